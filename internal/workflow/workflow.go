package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/five82/trellotally/internal/cache"
	"github.com/five82/trellotally/internal/source"
	"github.com/five82/trellotally/internal/trello"
)

var (
	// ErrSuperseded is returned when a newer fetch in the same slot (or a mode
	// switch) replaced the one whose result just arrived. The result is dropped.
	ErrSuperseded = errors.New("fetch superseded")
	// ErrUnknownCard is returned when a card id is not in the loaded cards.
	ErrUnknownCard = errors.New("unknown card")
)

// Mode selects where collections come from.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeCached Mode = "cached"
)

// ParseMode accepts "remote" or "cached".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRemote, ModeCached:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// Selection is the active board and list. Empty means none.
type Selection struct {
	BoardID string
	ListID  string
}

// Snapshot is a copy of the workflow state for the presentation layer.
type Snapshot struct {
	Mode      Mode
	Boards    []trello.Board
	Lists     []trello.List
	Cards     []trello.Card
	Selection Selection
	Total     float64
	LastError error
	// Version increases with every state change. Consumers holding an older
	// snapshot can tell it is stale.
	Version uint64
}

type slot int

const (
	slotBoards slot = iota
	slotLists
	slotCards
	slotCount
)

func (s slot) String() string {
	switch s {
	case slotBoards:
		return "boards"
	case slotLists:
		return "lists"
	case slotCards:
		return "cards"
	default:
		return "unknown"
	}
}

type fetchSlot struct {
	gen    uint64
	cancel context.CancelFunc
}

// Workflow coordinates the drill-down, edits and persistence.
type Workflow struct {
	store  cache.Store
	remote source.DataSource
	cached *source.Cached
	logger log.FieldLogger

	mu    sync.RWMutex
	state Snapshot
	slots [slotCount]fetchSlot
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithLogger sets the logger used for fetch failures and state changes.
func WithLogger(l log.FieldLogger) Option {
	return func(w *Workflow) {
		if l != nil {
			w.logger = l
		}
	}
}

// New builds a Workflow in remote mode. Call Initialize to restore the
// persisted mode and load boards.
func New(store cache.Store, remote source.DataSource, opts ...Option) *Workflow {
	w := &Workflow{
		store:  store,
		remote: remote,
		cached: source.NewCached(store),
		logger: log.StandardLogger(),
		state:  Snapshot{Mode: ModeRemote},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Initialize reads the persisted mode (remote when absent) and loads boards.
func (w *Workflow) Initialize(ctx context.Context) error {
	raw, ok, err := w.store.Get(ctx, source.KeyMode)
	if err != nil {
		return fmt.Errorf("read mode: %w", err)
	}
	mode := ModeRemote
	if ok && raw == "true" {
		mode = ModeCached
	}

	w.mu.Lock()
	w.state.Mode = mode
	w.state.Version++
	w.mu.Unlock()

	w.logger.WithField("mode", mode).Debug("workflow initialized")
	return w.LoadBoards(ctx)
}

// LoadBoards restores the whole session from the cache in cached mode, or
// fetches boards in remote mode. On failure boards keep their previous value.
func (w *Workflow) LoadBoards(ctx context.Context) error {
	w.mu.Lock()
	mode := w.state.Mode
	fctx, gen := w.begin(ctx, slotBoards)
	w.mu.Unlock()

	if mode == ModeCached {
		return w.hydrate(ctx, fctx, gen)
	}

	boards, err := w.remote.LoadBoards(fctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.finish(slotBoards, gen) {
		return ErrSuperseded
	}
	if err != nil {
		return w.failLocked(slotBoards, err)
	}
	w.state.Boards = cloneSlice(boards)
	w.state.LastError = nil
	return w.persistLocked(ctx)
}

func (w *Workflow) hydrate(ctx, fctx context.Context, gen uint64) error {
	h, err := w.cached.Hydrate(fctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.finish(slotBoards, gen) {
		return ErrSuperseded
	}
	if err != nil {
		return w.failLocked(slotBoards, err)
	}

	if h.HasBoards {
		w.state.Boards = cloneSlice(h.Boards)
	}
	if h.HasLists {
		w.state.Lists = cloneSlice(h.Lists)
	}
	if h.HasCards {
		w.state.Cards = cloneSlice(h.Cards)
		w.state.Total = total(w.state.Cards)
	}
	if h.HasBoardID {
		w.state.Selection.BoardID = h.BoardID
	}
	if h.HasListID {
		w.state.Selection.ListID = h.ListID
	}
	w.state.LastError = nil
	return w.persistLocked(ctx)
}

// SelectBoard makes boardID active, clears lists, cards and the active list,
// then loads the board's lists through the active source.
func (w *Workflow) SelectBoard(ctx context.Context, boardID string) error {
	w.mu.Lock()
	w.state.Selection = Selection{BoardID: boardID}
	w.state.Lists = nil
	w.state.Cards = nil
	w.state.Total = 0
	w.state.Version++
	w.cancelLocked(slotCards)
	src := w.activeLocked()
	fctx, gen := w.begin(ctx, slotLists)
	w.mu.Unlock()

	lists, err := src.LoadLists(fctx, boardID)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.finish(slotLists, gen) {
		return ErrSuperseded
	}
	if err != nil {
		failErr := w.failLocked(slotLists, err)
		if perr := w.persistLocked(ctx); perr != nil {
			return errors.Join(failErr, perr)
		}
		return failErr
	}
	w.state.Lists = cloneSlice(lists)
	w.state.LastError = nil
	return w.persistLocked(ctx)
}

// SelectList makes listID active, clears cards, then loads the list's cards
// through the active source.
func (w *Workflow) SelectList(ctx context.Context, listID string) error {
	w.mu.Lock()
	w.state.Selection.ListID = listID
	w.state.Cards = nil
	w.state.Total = 0
	w.state.Version++
	src := w.activeLocked()
	fctx, gen := w.begin(ctx, slotCards)
	w.mu.Unlock()

	cards, err := src.LoadCards(fctx, listID)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.finish(slotCards, gen) {
		return ErrSuperseded
	}
	if err != nil {
		failErr := w.failLocked(slotCards, err)
		if perr := w.persistLocked(ctx); perr != nil {
			return errors.Join(failErr, perr)
		}
		return failErr
	}
	w.state.Cards = cloneSlice(cards)
	for i := range w.state.Cards {
		w.state.Cards[i].Price = sanitizePrice(w.state.Cards[i].Price)
	}
	w.state.Total = total(w.state.Cards)
	w.state.LastError = nil
	return w.persistLocked(ctx)
}

// SetCardPrice sets the price of card id. NaN, infinities and negative
// prices become 0. The card keeps its position.
func (w *Workflow) SetCardPrice(ctx context.Context, id string, price float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := indexOfCard(w.state.Cards, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCard, id)
	}
	w.state.Cards[i].Price = sanitizePrice(price)
	w.state.Total = total(w.state.Cards)
	return w.persistLocked(ctx)
}

// SetCardChecked sets the checked flag of card id and moves checked cards
// ahead of unchecked ones, keeping order within each group.
func (w *Workflow) SetCardChecked(ctx context.Context, id string, checked bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := indexOfCard(w.state.Cards, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCard, id)
	}
	w.state.Cards[i].Checked = checked
	w.state.Cards = partitionChecked(w.state.Cards)
	w.state.Total = total(w.state.Cards)
	return w.persistLocked(ctx)
}

// ToggleMode persists mode and reloads: a full hydrate from the cache for
// ModeCached, a fresh board fetch for ModeRemote. In-flight fetches are
// cancelled.
func (w *Workflow) ToggleMode(ctx context.Context, mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}

	w.mu.Lock()
	for s := slot(0); s < slotCount; s++ {
		w.cancelLocked(s)
	}
	w.state.Mode = mode
	w.state.Version++
	w.mu.Unlock()

	flag := "false"
	if mode == ModeCached {
		flag = "true"
	}
	if err := w.store.Set(ctx, source.KeyMode, flag); err != nil {
		return fmt.Errorf("persist mode: %w", err)
	}
	w.logger.WithField("mode", mode).Info("data source switched")
	return w.LoadBoards(ctx)
}

// Persist writes the session to the cache in cached mode and clears the
// cache in remote mode.
func (w *Workflow) Persist(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.persistLocked(ctx)
}

// Mode reports the active data source mode.
func (w *Workflow) Mode() Mode {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state.Mode
}

// Snapshot returns a copy of the current state.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	snap := w.state
	snap.Boards = cloneSlice(w.state.Boards)
	snap.Lists = cloneSlice(w.state.Lists)
	snap.Cards = cloneSlice(w.state.Cards)
	if w.state.LastError != nil {
		snap.LastError = fmt.Errorf("%w", w.state.LastError)
	}
	return snap
}

func (w *Workflow) activeLocked() source.DataSource {
	if w.state.Mode == ModeCached {
		return w.cached
	}
	return w.remote
}

// begin starts a fetch in s, cancelling whatever ran there before.
func (w *Workflow) begin(ctx context.Context, s slot) (context.Context, uint64) {
	w.cancelLocked(s)
	fctx, cancel := context.WithCancel(ctx)
	w.slots[s].cancel = cancel
	return fctx, w.slots[s].gen
}

// finish releases the fetch context and reports whether gen is still current.
func (w *Workflow) finish(s slot, gen uint64) bool {
	if w.slots[s].gen != gen {
		return false
	}
	if w.slots[s].cancel != nil {
		w.slots[s].cancel()
		w.slots[s].cancel = nil
	}
	return true
}

func (w *Workflow) cancelLocked(s slot) {
	if w.slots[s].cancel != nil {
		w.slots[s].cancel()
		w.slots[s].cancel = nil
	}
	w.slots[s].gen++
}

// failLocked records err. Fetch failures are logged at warn level and do not
// touch the collections.
func (w *Workflow) failLocked(s slot, err error) error {
	w.state.LastError = err
	w.state.Version++

	var fe *trello.FetchError
	if errors.As(err, &fe) {
		w.logger.WithFields(log.Fields{
			"op":     fe.Op,
			"reason": fe.Reason,
			"status": fe.Status,
		}).WithError(err).Warn("fetch failed")
	} else {
		w.logger.WithField("slot", s.String()).WithError(err).Error("load failed")
	}
	return fmt.Errorf("load %s: %w", s, err)
}

func (w *Workflow) persistLocked(ctx context.Context) error {
	w.state.Version++
	if w.state.Mode == ModeCached {
		err := w.cached.Save(ctx, source.Snapshot{
			Boards:  w.state.Boards,
			Lists:   w.state.Lists,
			Cards:   w.state.Cards,
			BoardID: w.state.Selection.BoardID,
			ListID:  w.state.Selection.ListID,
		})
		if err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
		return nil
	}
	if err := w.store.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
