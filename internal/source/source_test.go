package source

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/five82/trellotally/internal/cache"
	"github.com/five82/trellotally/internal/trello"
)

type stubFetcher struct {
	boards []trello.Board
	lists  map[string][]trello.List
	cards  map[string][]trello.Card
	err    error
}

func (s *stubFetcher) FetchBoards(context.Context) ([]trello.Board, error) {
	return s.boards, s.err
}

func (s *stubFetcher) FetchLists(_ context.Context, boardID string) ([]trello.List, error) {
	return s.lists[boardID], s.err
}

func (s *stubFetcher) FetchCards(_ context.Context, listID string) ([]trello.Card, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]trello.Card(nil), s.cards[listID]...), nil
}

func TestRemote_LoadCardsResetsLocalFields(t *testing.T) {
	r := NewRemote(&stubFetcher{cards: map[string][]trello.Card{
		"l1": {{ID: "c1", Name: "Task", Price: 12, Checked: true}},
	}})

	cards, err := r.LoadCards(context.Background(), "l1")
	if err != nil {
		t.Fatalf("LoadCards: %v", err)
	}
	want := []trello.Card{{ID: "c1", Name: "Task"}}
	if !reflect.DeepEqual(cards, want) {
		t.Fatalf("LoadCards = %#v, want %#v", cards, want)
	}
}

func TestRemote_PassesErrorsThrough(t *testing.T) {
	boom := errors.New("boom")
	r := NewRemote(&stubFetcher{err: boom})

	if _, err := r.LoadBoards(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("LoadBoards error = %v, want boom", err)
	}
	if _, err := r.LoadCards(context.Background(), "l1"); !errors.Is(err, boom) {
		t.Fatalf("LoadCards error = %v, want boom", err)
	}
}

func TestCached_SaveThenHydrate(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	c := NewCached(store)

	snap := Snapshot{
		Boards:  []trello.Board{{ID: "b1", Name: "Work"}},
		Lists:   []trello.List{{ID: "l1", Name: "Todo"}},
		Cards:   []trello.Card{{ID: "c1", Name: "Task", Price: 9.5, Checked: true}},
		BoardID: "b1",
		ListID:  "l1",
	}
	if err := c.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	h, err := c.Hydrate(ctx)
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if !h.HasBoards || !h.HasLists || !h.HasCards || !h.HasBoardID || !h.HasListID {
		t.Fatalf("Hydrate flags = %#v, want all present", h)
	}
	if !reflect.DeepEqual(h.Snapshot, snap) {
		t.Fatalf("Hydrate = %#v, want %#v", h.Snapshot, snap)
	}
}

func TestCached_SaveWritesArraysForEmptyCollections(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	if err := NewCached(store).Save(ctx, Snapshot{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	for _, key := range []string{KeyBoards, KeyLists, KeyCards} {
		if v, _, _ := store.Get(ctx, key); v != "[]" {
			t.Fatalf("%s = %q, want []", key, v)
		}
	}
	if v, ok, _ := store.Get(ctx, KeySelectedBoard); !ok || v != "" {
		t.Fatalf("selectedBoard = %q ok %v, want stored empty string", v, ok)
	}
}

func TestCached_HydrateSkipsAbsentAndEmptyKeys(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	_ = store.Set(ctx, KeyBoards, `[{"id":"b1","name":"Work"}]`)
	_ = store.Set(ctx, KeySelectedBoard, "")

	h, err := NewCached(store).Hydrate(ctx)
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if !h.HasBoards || len(h.Boards) != 1 {
		t.Fatalf("boards = %#v, want one board", h.Boards)
	}
	if h.HasLists || h.HasCards || h.HasBoardID || h.HasListID {
		t.Fatalf("Hydrate flags = %#v, want only boards present", h)
	}
}

func TestCached_LoadListsIgnoresBoardID(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	_ = store.Set(ctx, KeyLists, `[{"id":"l1","name":"Todo"}]`)

	c := NewCached(store)
	a, err := c.LoadLists(ctx, "b1")
	if err != nil {
		t.Fatalf("LoadLists: %v", err)
	}
	b, err := c.LoadLists(ctx, "some-other-board")
	if err != nil {
		t.Fatalf("LoadLists: %v", err)
	}
	if !reflect.DeepEqual(a, b) || len(a) != 1 {
		t.Fatalf("LoadLists = %#v and %#v, want the same cached lists", a, b)
	}
}

func TestCached_CorruptValueFails(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	_ = store.Set(ctx, KeyCards, "{oops")

	if _, err := NewCached(store).LoadCards(ctx, "l1"); err == nil {
		t.Fatalf("LoadCards returned nil error, want decode error")
	}
	if _, err := NewCached(store).Hydrate(ctx); err == nil {
		t.Fatalf("Hydrate returned nil error, want decode error")
	}
}
