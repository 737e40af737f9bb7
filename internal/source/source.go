// Package source provides the two interchangeable data sources the pricing
// workflow reads from: the Trello API and the local cache.
package source

import (
	"context"

	"github.com/five82/trellotally/internal/trello"
)

// DataSource loads the three drill-down collections.
type DataSource interface {
	LoadBoards(ctx context.Context) ([]trello.Board, error)
	LoadLists(ctx context.Context, boardID string) ([]trello.List, error)
	LoadCards(ctx context.Context, listID string) ([]trello.Card, error)
}

// Hydrator is implemented by sources able to restore a whole session
// (collections and selection) in one go.
type Hydrator interface {
	Hydrate(ctx context.Context) (Hydration, error)
}

// Cache keys. They match what earlier releases wrote, so existing caches
// stay readable.
const (
	KeyMode          = "useLocalStorage"
	KeyBoards        = "boards"
	KeyLists         = "lists"
	KeyCards         = "cards"
	KeySelectedBoard = "selectedBoard"
	KeySelectedList  = "selectedList"
)

// Snapshot is the persisted part of a session.
type Snapshot struct {
	Boards  []trello.Board
	Lists   []trello.List
	Cards   []trello.Card
	BoardID string
	ListID  string
}

// Hydration is a Snapshot read back from the cache. The Has flags report
// which keys held a non-empty value; fields whose flag is false are zero.
type Hydration struct {
	Snapshot
	HasBoards  bool
	HasLists   bool
	HasCards   bool
	HasBoardID bool
	HasListID  bool
}
