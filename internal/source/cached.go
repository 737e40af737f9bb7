package source

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/five82/trellotally/internal/cache"
	"github.com/five82/trellotally/internal/trello"
)

var codec = sonic.ConfigStd

// Cached reads collections back from a cache.Store. Collections are JSON
// arrays, selection ids raw strings.
type Cached struct {
	store cache.Store
}

var (
	_ DataSource = (*Cached)(nil)
	_ Hydrator   = (*Cached)(nil)
)

// NewCached wraps store.
func NewCached(store cache.Store) *Cached {
	return &Cached{store: store}
}

func (c *Cached) LoadBoards(ctx context.Context) ([]trello.Board, error) {
	var boards []trello.Board
	_, err := c.read(ctx, KeyBoards, &boards)
	return boards, err
}

// LoadLists returns the cached lists as stored. The cache keeps only the
// lists of the last selected board, so boardID is not used to filter them.
func (c *Cached) LoadLists(ctx context.Context, _ string) ([]trello.List, error) {
	var lists []trello.List
	_, err := c.read(ctx, KeyLists, &lists)
	return lists, err
}

// LoadCards returns the cached cards, prices and checked flags included.
// Like LoadLists it does not filter by listID.
func (c *Cached) LoadCards(ctx context.Context, _ string) ([]trello.Card, error) {
	var cards []trello.Card
	_, err := c.read(ctx, KeyCards, &cards)
	return cards, err
}

// Hydrate reads all five session keys.
func (c *Cached) Hydrate(ctx context.Context) (Hydration, error) {
	var h Hydration
	var err error

	if h.HasBoards, err = c.read(ctx, KeyBoards, &h.Boards); err != nil {
		return Hydration{}, err
	}
	if h.HasLists, err = c.read(ctx, KeyLists, &h.Lists); err != nil {
		return Hydration{}, err
	}
	if h.HasCards, err = c.read(ctx, KeyCards, &h.Cards); err != nil {
		return Hydration{}, err
	}
	if h.BoardID, h.HasBoardID, err = c.readString(ctx, KeySelectedBoard); err != nil {
		return Hydration{}, err
	}
	if h.ListID, h.HasListID, err = c.readString(ctx, KeySelectedList); err != nil {
		return Hydration{}, err
	}
	return h, nil
}

// Save writes the five session keys one after another. A failure part way
// leaves the earlier keys written.
func (c *Cached) Save(ctx context.Context, snap Snapshot) error {
	if err := c.write(ctx, KeyBoards, nonNil(snap.Boards)); err != nil {
		return err
	}
	if err := c.write(ctx, KeyLists, nonNil(snap.Lists)); err != nil {
		return err
	}
	if err := c.write(ctx, KeyCards, nonNil(snap.Cards)); err != nil {
		return err
	}
	if err := c.store.Set(ctx, KeySelectedBoard, snap.BoardID); err != nil {
		return fmt.Errorf("cache %s: %w", KeySelectedBoard, err)
	}
	if err := c.store.Set(ctx, KeySelectedList, snap.ListID); err != nil {
		return fmt.Errorf("cache %s: %w", KeySelectedList, err)
	}
	return nil
}

// read decodes key into dest. An absent or empty value reports false and
// leaves dest untouched.
func (c *Cached) read(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok, err := c.readString(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := codec.UnmarshalFromString(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *Cached) readString(ctx context.Context, key string) (string, bool, error) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("read cached %s: %w", key, err)
	}
	if !ok || raw == "" {
		return "", false, nil
	}
	return raw, true, nil
}

func (c *Cached) write(ctx context.Context, key string, value any) error {
	encoded, err := codec.MarshalToString(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.store.Set(ctx, key, encoded); err != nil {
		return fmt.Errorf("cache %s: %w", key, err)
	}
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
