package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderContent lays out the visible panes side by side. With no boards
// only the board pane is drawn.
func (m Model) renderContent() string {
	contentHeight := m.height - 2 // header + footer
	if contentHeight < 3 {
		contentHeight = 3
	}
	visible := m.panesVisible()

	if !visible[PaneLists] {
		return m.renderPane(PaneBoards, m.width, contentHeight)
	}

	// Wide terminals give cards the most room.
	pickerWidth := m.width / 4
	if m.width >= 160 {
		pickerWidth = m.width / 5
	}

	if !visible[PaneCards] {
		boards := m.renderPane(PaneBoards, pickerWidth, contentHeight)
		lists := m.renderPane(PaneLists, m.width-pickerWidth, contentHeight)
		return lipgloss.JoinHorizontal(lipgloss.Top, boards, lists)
	}

	boards := m.renderPane(PaneBoards, pickerWidth, contentHeight)
	lists := m.renderPane(PaneLists, pickerWidth, contentHeight)
	cards := m.renderPane(PaneCards, m.width-2*pickerWidth, contentHeight)
	return lipgloss.JoinHorizontal(lipgloss.Top, boards, lists, cards)
}

func (m Model) renderPane(p Pane, width, height int) string {
	focused := m.focus == p
	innerWidth := width - 2
	rows := height - 2

	var title, body string
	switch p {
	case PaneBoards:
		title = "Boards"
		names := make([]string, len(m.snapshot.Boards))
		active := -1
		for i, b := range m.snapshot.Boards {
			names[i] = b.Name
			if b.ID == m.snapshot.Selection.BoardID {
				active = i
			}
		}
		body = m.renderPicker(names, active, m.cursor[p], focused, innerWidth, rows, "No boards")
	case PaneLists:
		title = "Lists"
		names := make([]string, len(m.snapshot.Lists))
		active := -1
		for i, l := range m.snapshot.Lists {
			names[i] = l.Name
			if l.ID == m.snapshot.Selection.ListID {
				active = i
			}
		}
		body = m.renderPicker(names, active, m.cursor[p], focused, innerWidth, rows, "No lists")
	case PaneCards:
		title = "Cards"
		body = m.renderCards(focused, innerWidth, rows)
	}
	return m.renderTitledBox(title, body, width, height, focused)
}

// renderPicker renders one name per row. The row under the cursor is
// highlighted when the pane has focus; the active entry carries a marker.
func (m Model) renderPicker(names []string, active, cursor int, focused bool, width, rows int, empty string) string {
	styles := m.theme.Styles()
	bgColor := m.paneBg(focused)
	bg := NewBgStyle(bgColor)
	styles = styles.WithBackground(bgColor)

	if len(names) == 0 {
		return bg.Render(empty, styles.MutedText)
	}

	start := scrollStart(cursor, len(names), rows)
	lines := make([]string, 0, rows)
	for i := start; i < len(names) && len(lines) < rows; i++ {
		marker := "  "
		if i == active {
			marker = "▸ "
		}
		text := marker + truncate(names[i], width-3)
		if focused && i == cursor {
			lines = append(lines, styles.Selected.Width(width).Render(text))
			continue
		}
		style := styles.Text
		if i == active {
			style = styles.AccentText
		}
		lines = append(lines, bg.Render(text, style))
	}
	return strings.Join(lines, "\n")
}

// renderCards renders "[x] name        $price" rows. The row being edited
// shows the price input instead of the price.
func (m Model) renderCards(focused bool, width, rows int) string {
	styles := m.theme.Styles()
	bgColor := m.paneBg(focused)
	bg := NewBgStyle(bgColor)
	styles = styles.WithBackground(bgColor)

	cards := m.snapshot.Cards
	if len(cards) == 0 {
		return bg.Render("No cards", styles.MutedText)
	}

	priceWidth := 12
	nameWidth := width - 4 - priceWidth - 1
	if nameWidth < 4 {
		nameWidth = 4
	}

	cursor := m.cursor[PaneCards]
	start := scrollStart(cursor, len(cards), rows)
	lines := make([]string, 0, rows)
	for i := start; i < len(cards) && len(lines) < rows; i++ {
		c := cards[i]
		box := "[ ] "
		if c.Checked {
			box = "[x] "
		}
		name := truncate(c.Name, nameWidth)
		pad := strings.Repeat(" ", max(nameWidth-lipgloss.Width(name), 0)+1)

		price := formatPrice(m.currency, c.Price)
		if m.editing && c.ID == m.editCardID {
			price = m.priceInput.View()
		}
		price = lipgloss.NewStyle().Width(priceWidth).Align(lipgloss.Right).Render(price)

		if focused && i == cursor && !m.editing {
			lines = append(lines, styles.Selected.Width(width).Render(box+name+pad+price))
			continue
		}
		boxStyle := styles.FaintText
		if c.Checked {
			boxStyle = styles.Checked
		}
		lines = append(lines,
			bg.Render(box, boxStyle)+bg.Render(name, styles.Text)+bg.Sep(pad)+bg.Render(price, styles.Price))
	}
	return strings.Join(lines, "\n")
}

func (m Model) paneBg(focused bool) string {
	if focused {
		return m.theme.FocusBg
	}
	return m.theme.SurfaceAlt
}

// scrollStart returns the first row to draw so the cursor stays visible.
func scrollStart(cursor, total, rows int) int {
	if rows <= 0 || total <= rows || cursor < rows {
		return 0
	}
	start := cursor - rows + 1
	if start > total-rows {
		start = total - rows
	}
	return start
}

// renderTitledBox draws a bordered box with the title in the top border.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr := m.theme.Border
	if focused {
		borderColorStr = m.theme.BorderFocus
	}
	bgColorStr := m.paneBg(focused)
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).Background(lipgloss.Color(bgColorStr))
	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}
