package ui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/five82/trellotally/internal/prefs"
	"github.com/five82/trellotally/internal/trello"
	"github.com/five82/trellotally/internal/workflow"
)

// Pane identifies one of the three pickers.
type Pane int

const (
	PaneBoards Pane = iota
	PaneLists
	PaneCards
	paneCount
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Workflow  *workflow.Workflow
	Logger    log.FieldLogger
	ThemeName string
	Currency  string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	wf        *workflow.Workflow
	logger    log.FieldLogger
	prefsPath string
	keys      keyMap
	currency  string

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool
	focus  Pane
	cursor [paneCount]int

	// Data state
	snapshot workflow.Snapshot
	pending  int
	spinner  spinner.Model

	// Price editing
	editing    bool
	editCardID string
	priceInput textinput.Model
	followID   string

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	currency := opts.Currency
	if currency == "" {
		currency = "$"
	}

	input := textinput.New()
	input.Placeholder = "0.00"
	input.CharLimit = 16
	input.Width = 10
	input.Prompt = currency

	m := Model{
		ctx:        ctx,
		wf:         opts.Workflow,
		logger:     logger,
		prefsPath:  opts.PrefsPath,
		keys:       DefaultKeyMap(),
		currency:   currency,
		theme:      GetTheme(opts.ThemeName),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		priceInput: input,
	}
	if m.wf != nil {
		m.snapshot = m.wf.Snapshot()
		m.pending = 1
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen, m.spinner.Tick}
	if m.wf != nil {
		cmds = append(cmds, m.runOp("initialize", m.wf.Initialize))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resultMsg:
		m.handleResult(msg)
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.priceInput, cmd = m.priceInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// Snapshot returns the workflow state the model last rendered.
func (m Model) Snapshot() workflow.Snapshot {
	return m.snapshot
}

func (m *Model) handleResult(msg resultMsg) {
	if m.pending > 0 {
		m.pending--
	}
	if msg.snap.Version < m.snapshot.Version {
		return
	}
	m.snapshot = msg.snap
	if !m.panesVisible()[m.focus] {
		m.focus = PaneBoards
	}
	if m.followID != "" {
		for i, c := range m.snapshot.Cards {
			if c.ID == m.followID {
				m.cursor[PaneCards] = i
				break
			}
		}
		m.followID = ""
	}
	m.clampCursors()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.editing {
		return m.handlePriceKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.logger.WithError(err).Warn("save prefs")
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleMode):
		next := workflow.ModeCached
		if m.snapshot.Mode == workflow.ModeCached {
			next = workflow.ModeRemote
		}
		return m.start("toggle mode", func(ctx context.Context) error {
			return m.wf.ToggleMode(ctx, next)
		})

	case key.Matches(msg, m.keys.Reload):
		return m.start("load boards", m.wf.LoadBoards)

	case key.Matches(msg, m.keys.Tab):
		m.cycleFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.cycleFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.cursor[m.focus] = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.cursor[m.focus] = m.rowCount(m.focus) - 1
		m.clampCursors()
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.activate()

	case key.Matches(msg, m.keys.ToggleCheck):
		card, ok := m.selectedCard()
		if !ok || m.focus != PaneCards {
			return m, nil
		}
		m.followID = card.ID
		return m.start("toggle checked", func(ctx context.Context) error {
			return m.wf.SetCardChecked(ctx, card.ID, !card.Checked)
		})

	case key.Matches(msg, m.keys.EditPrice):
		if m.focus != PaneCards {
			return m, nil
		}
		return m.startEdit()
	}

	return m, nil
}

// activate opens the board or list under the cursor, or edits the price of
// the card under it.
func (m Model) activate() (tea.Model, tea.Cmd) {
	switch m.focus {
	case PaneBoards:
		if len(m.snapshot.Boards) == 0 {
			return m, nil
		}
		board := m.snapshot.Boards[m.cursor[PaneBoards]]
		m.focus = PaneLists
		m.cursor[PaneLists] = 0
		m.cursor[PaneCards] = 0
		return m.start("select board", func(ctx context.Context) error {
			return m.wf.SelectBoard(ctx, board.ID)
		})

	case PaneLists:
		if len(m.snapshot.Lists) == 0 {
			return m, nil
		}
		list := m.snapshot.Lists[m.cursor[PaneLists]]
		m.focus = PaneCards
		m.cursor[PaneCards] = 0
		return m.start("select list", func(ctx context.Context) error {
			return m.wf.SelectList(ctx, list.ID)
		})

	case PaneCards:
		return m.startEdit()
	}
	return m, nil
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	card, ok := m.selectedCard()
	if !ok {
		return m, nil
	}
	m.editing = true
	m.editCardID = card.ID
	m.priceInput.SetValue("")
	if card.Price != 0 {
		m.priceInput.SetValue(strconv.FormatFloat(card.Price, 'f', -1, 64))
	}
	m.priceInput.CursorEnd()
	return m, m.priceInput.Focus()
}

func (m Model) handlePriceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		id := m.editCardID
		price := parsePrice(m.priceInput.Value(), m.currency)
		m.stopEdit()
		return m.start("set price", func(ctx context.Context) error {
			return m.wf.SetCardPrice(ctx, id, price)
		})

	case key.Matches(msg, m.keys.Cancel):
		m.stopEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.priceInput, cmd = m.priceInput.Update(msg)
	return m, cmd
}

func (m *Model) stopEdit() {
	m.editing = false
	m.editCardID = ""
	m.priceInput.Blur()
}

// start runs a workflow operation in the background.
func (m Model) start(op string, fn func(context.Context) error) (tea.Model, tea.Cmd) {
	if m.wf == nil {
		return m, nil
	}
	m.pending++
	return m, m.runOp(op, fn)
}

func (m Model) runOp(op string, fn func(context.Context) error) tea.Cmd {
	ctx, wf, logger := m.ctx, m.wf, m.logger
	return func() tea.Msg {
		err := fn(ctx)
		switch {
		case err == nil, errors.Is(err, workflow.ErrSuperseded):
		case trello.IsFetchFailure(err):
			// Logged by the workflow.
		default:
			logger.WithField("op", op).WithError(err).Error("operation failed")
		}
		return resultMsg{op: op, snap: wf.Snapshot(), err: err}
	}
}

// panesVisible reports which panes are shown. Lists appear once there are
// boards to pick from, cards once a list is active.
func (m Model) panesVisible() [paneCount]bool {
	return [paneCount]bool{
		PaneBoards: true,
		PaneLists:  len(m.snapshot.Boards) > 0,
		PaneCards:  len(m.snapshot.Boards) > 0 && m.snapshot.Selection.ListID != "",
	}
}

func (m *Model) cycleFocus(step int) {
	visible := m.panesVisible()
	next := m.focus
	for range paneCount {
		next = Pane((int(next) + step + int(paneCount)) % int(paneCount))
		if visible[next] {
			m.focus = next
			return
		}
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor[m.focus] += delta
	m.clampCursors()
}

func (m *Model) clampCursors() {
	for p := PaneBoards; p < paneCount; p++ {
		n := m.rowCount(p)
		if m.cursor[p] >= n {
			m.cursor[p] = n - 1
		}
		if m.cursor[p] < 0 {
			m.cursor[p] = 0
		}
	}
}

func (m Model) rowCount(p Pane) int {
	switch p {
	case PaneBoards:
		return len(m.snapshot.Boards)
	case PaneLists:
		return len(m.snapshot.Lists)
	case PaneCards:
		return len(m.snapshot.Cards)
	}
	return 0
}

func (m Model) selectedCard() (trello.Card, bool) {
	i := m.cursor[PaneCards]
	if i < 0 || i >= len(m.snapshot.Cards) {
		return trello.Card{}, false
	}
	return m.snapshot.Cards[i], true
}

// parsePrice reads a user-entered price. Anything that is not a number
// becomes 0; the workflow clamps the rest.
func parsePrice(raw, currency string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, currency)
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Messages

type resultMsg struct {
	op   string
	snap workflow.Snapshot
	err  error
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
