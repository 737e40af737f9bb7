package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/trellotally/internal/workflow"
)

// renderMain renders header, panes and footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader shows the app name, data source mode and the active
// board and list.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	mode := bg.Render("REMOTE", styles.InfoText.Bold(true))
	if m.snapshot.Mode == workflow.ModeCached {
		mode = bg.Render("CACHED", styles.WarningText.Bold(true))
	}

	parts := []string{
		bg.Render("trellotally", styles.Logo),
		mode,
	}
	if crumb := m.breadcrumb(); crumb != "" {
		parts = append(parts, bg.Render(truncate(crumb, m.width/2), styles.MutedText))
	}
	if m.pending > 0 {
		parts = append(parts, bg.Render(m.spinner.View()+" loading", styles.AccentText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

func (m Model) breadcrumb() string {
	sel := m.snapshot.Selection
	var parts []string
	if name := m.boardName(sel.BoardID); name != "" {
		parts = append(parts, name)
	}
	if name := m.listName(sel.ListID); name != "" {
		parts = append(parts, name)
	}
	return strings.Join(parts, " › ")
}

func (m Model) boardName(id string) string {
	for _, b := range m.snapshot.Boards {
		if b.ID == id {
			return b.Name
		}
	}
	return ""
}

func (m Model) listName(id string) string {
	for _, l := range m.snapshot.Lists {
		if l.ID == id {
			return l.Name
		}
	}
	return ""
}

// renderFooter shows key hints on the left and the running total on the
// right.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	bindings := m.keys.ShortHelp()
	if m.editing {
		bindings = m.keys.FullHelp()[2]
	}
	hints := make([]string, 0, len(bindings))
	for _, k := range bindings {
		h := k.Help()
		hints = append(hints, bg.Render(h.Key, styles.WarningText)+bg.Space()+bg.Render(h.Desc, styles.MutedText))
	}
	left := bg.Join(hints, "  ")
	right := bg.Render(FormatTotal(m.currency, m.snapshot.Total), styles.SuccessText)

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// The total wins over the hints on narrow terminals.
		left = ""
		gap = max(m.width-2-lipgloss.Width(right), 0)
	}
	return styles.Footer.Width(m.width).Render(left + bg.Spaces(gap) + right)
}
