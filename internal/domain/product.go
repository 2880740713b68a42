package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry. Products are loaded once and never mutated.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Featured    bool            `json:"featured,omitempty"`
	ComingSoon  bool            `json:"comingSoon,omitempty"`
}

// ProductType is a purchase configuration axis with its selectable options.
type ProductType struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}
