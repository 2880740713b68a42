package domain

import "github.com/shopspring/decimal"

// CartLineItem is one cart slot: a product plus its selection attributes.
type CartLineItem struct {
	Product        Product `json:"product"`
	SelectedType   string  `json:"selectedType"`
	SelectedOption string  `json:"selectedOption"`
	SelectedField  string  `json:"selectedField"`
	Quantity       int     `json:"quantity"`
}

// SlotKey identifies a cart slot. Two line items with equal keys are merged.
type SlotKey struct {
	ProductID      string `json:"productId"`
	SelectedType   string `json:"selectedType"`
	SelectedOption string `json:"selectedOption"`
	SelectedField  string `json:"selectedField"`
}

func (i CartLineItem) Key() SlotKey {
	return SlotKey{
		ProductID:      i.Product.ID,
		SelectedType:   i.SelectedType,
		SelectedOption: i.SelectedOption,
		SelectedField:  i.SelectedField,
	}
}

// LineTotal returns price * quantity.
func (i CartLineItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SumLines is the cart total over items.
func SumLines(items []CartLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// FormatMoney renders an amount as dollars with two decimals.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
