package workflow

import (
	"math"

	"github.com/five82/trellotally/internal/trello"
)

// sanitizePrice maps NaN, infinities and negative values to 0.
func sanitizePrice(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}

func total(cards []trello.Card) float64 {
	var sum float64
	for _, c := range cards {
		sum += sanitizePrice(c.Price)
	}
	return sum
}

// partitionChecked moves checked cards ahead of unchecked ones. Order inside
// each group is kept.
func partitionChecked(cards []trello.Card) []trello.Card {
	out := make([]trello.Card, 0, len(cards))
	for _, c := range cards {
		if c.Checked {
			out = append(out, c)
		}
	}
	for _, c := range cards {
		if !c.Checked {
			out = append(out, c)
		}
	}
	return out
}

func indexOfCard(cards []trello.Card, id string) int {
	for i := range cards {
		if cards[i].ID == id {
			return i
		}
	}
	return -1
}
