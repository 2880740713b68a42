// Package cart holds the shopping cart state machine. State changes only
// through Reduce; Session owns one state and is the single writer for it.
package cart

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// State is the cart of one session. Total always equals the sum of
// price * quantity over Items.
type State struct {
	Items []domain.CartLineItem `json:"items"`
	Total decimal.Decimal       `json:"total"`
}

// Empty returns a cart with no items and a zero total.
func Empty() State {
	return State{Items: []domain.CartLineItem{}, Total: decimal.Zero}
}

// Len returns the number of slots.
func (s State) Len() int {
	return len(s.Items)
}

// Quantity sums quantities across slots.
func (s State) Quantity() int {
	n := 0
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}

func (s State) clone() State {
	items := make([]domain.CartLineItem, len(s.Items))
	copy(items, s.Items)
	return State{Items: items, Total: s.Total}
}

func withItems(items []domain.CartLineItem) State {
	return State{Items: items, Total: domain.SumLines(items)}
}
