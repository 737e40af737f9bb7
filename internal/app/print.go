package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/five82/trellotally/internal/trello"
	"github.com/five82/trellotally/internal/ui"
	"github.com/five82/trellotally/internal/workflow"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case "", FormatText, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text or yaml)", format)
	}
}

// report is the headless view of a session.
type report struct {
	Mode   string         `yaml:"mode"`
	Board  *trello.Board  `yaml:"board,omitempty"`
	List   *trello.List   `yaml:"list,omitempty"`
	Boards []trello.Board `yaml:"boards,omitempty"`
	Lists  []trello.List  `yaml:"lists,omitempty"`
	Cards  []trello.Card  `yaml:"cards,omitempty"`
	Total  float64        `yaml:"total"`
}

// printSession loads the session, drills down to the requested board and
// list, and writes what it finds. Without a board it lists boards; with a
// board but no list it lists that board's lists.
func printSession(ctx context.Context, wf *workflow.Workflow, w io.Writer, opts Options, currency string) error {
	if err := wf.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	if opts.BoardID != "" {
		if err := wf.SelectBoard(ctx, opts.BoardID); err != nil {
			return fmt.Errorf("select board %s: %w", opts.BoardID, err)
		}
	}
	if opts.ListID != "" {
		if err := wf.SelectList(ctx, opts.ListID); err != nil {
			return fmt.Errorf("select list %s: %w", opts.ListID, err)
		}
	}

	r := buildReport(wf.Snapshot())
	if opts.Format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	_, err := io.WriteString(w, renderText(r, currency))
	return err
}

func buildReport(snap workflow.Snapshot) report {
	r := report{Mode: string(snap.Mode), Total: snap.Total}
	for i := range snap.Boards {
		if snap.Boards[i].ID == snap.Selection.BoardID {
			r.Board = &snap.Boards[i]
		}
	}
	for i := range snap.Lists {
		if snap.Lists[i].ID == snap.Selection.ListID {
			r.List = &snap.Lists[i]
		}
	}
	switch {
	case snap.Selection.ListID != "":
		r.Cards = snap.Cards
	case snap.Selection.BoardID != "":
		r.Lists = snap.Lists
	default:
		r.Boards = snap.Boards
	}
	return r
}

func renderText(r report, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mode: %s\n", r.Mode)
	if r.Board != nil {
		fmt.Fprintf(&b, "Board: %s\n", r.Board.Name)
	}
	if r.List != nil {
		fmt.Fprintf(&b, "List: %s\n", r.List.Name)
	}

	t := table.New().Border(lipgloss.NormalBorder())
	switch {
	case r.Cards != nil:
		t.Headers("", "CARD", "PRICE")
		for _, c := range r.Cards {
			box := "[ ]"
			if c.Checked {
				box = "[x]"
			}
			t.Row(box, c.Name, fmt.Sprintf("%s%.2f", currency, c.Price))
		}
	case r.Lists != nil:
		t.Headers("LIST", "ID")
		for _, l := range r.Lists {
			t.Row(l.Name, l.ID)
		}
	default:
		t.Headers("BOARD", "ID")
		for _, bd := range r.Boards {
			t.Row(bd.Name, bd.ID)
		}
	}
	b.WriteString(t.String())
	b.WriteString("\n")
	b.WriteString(ui.FormatTotal(currency, r.Total))
	b.WriteString("\n")
	return b.String()
}
