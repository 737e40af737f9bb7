package source

import (
	"context"

	"github.com/five82/trellotally/internal/trello"
)

// Remote reads from the Trello API.
type Remote struct {
	fetcher trello.BoardFetcher
}

var _ DataSource = (*Remote)(nil)

// NewRemote wraps fetcher.
func NewRemote(fetcher trello.BoardFetcher) *Remote {
	return &Remote{fetcher: fetcher}
}

func (r *Remote) LoadBoards(ctx context.Context) ([]trello.Board, error) {
	return r.fetcher.FetchBoards(ctx)
}

func (r *Remote) LoadLists(ctx context.Context, boardID string) ([]trello.List, error) {
	return r.fetcher.FetchLists(ctx, boardID)
}

// LoadCards fetches the cards of listID with price and checked reset.
func (r *Remote) LoadCards(ctx context.Context, listID string) ([]trello.Card, error) {
	cards, err := r.fetcher.FetchCards(ctx, listID)
	if err != nil {
		return nil, err
	}
	for i := range cards {
		cards[i].Price = 0
		cards[i].Checked = false
	}
	return cards, nil
}
