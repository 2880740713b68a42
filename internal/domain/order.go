package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod selects the checkout path.
type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentGateway      PaymentMethod = "gateway"
)

// Label is the human readable name written to the order store.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentBankTransfer:
		return "Bank Transfer"
	case PaymentGateway:
		return "Payment Gateway"
	default:
		return string(m)
	}
}

// PaymentMethodFromLabel reverses Label.
func PaymentMethodFromLabel(label string) PaymentMethod {
	for _, m := range []PaymentMethod{PaymentBankTransfer, PaymentGateway} {
		if m.Label() == label {
			return m
		}
	}
	return PaymentMethod(label)
}

const (
	StatusPendingPayment = "Pending Payment"
	SummaryProductName   = "--- ORDER TOTAL ---"
)

// CustomerDetails are supplied at checkout; every field is required.
type CustomerDetails struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

// Order is assembled once per submission and never mutated afterwards.
type Order struct {
	ID              string          `json:"orderId"`
	OrderDate       time.Time       `json:"orderDate"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
	Items           []CartLineItem  `json:"cartItems"`
	Total           decimal.Decimal `json:"total"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	IdempotencyKey  string          `json:"-"`
}

// TotalQuantity sums item quantities.
func (o Order) TotalQuantity() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// OrderRow is one typed row of the order store.
type OrderRow struct {
	RowNumber       int    `json:"rowNumber"`
	OrderID         string `json:"orderId"`
	DateTime        string `json:"dateTime"`
	CustomerName    string `json:"customerName"`
	CustomerSurname string `json:"customerSurname"`
	PhoneNumber     string `json:"phoneNumber"`
	Address         string `json:"address"`
	ProductName     string `json:"productName"`
	ProductType     string `json:"productType"`
	ProductOption   string `json:"productOption"`
	AdditionalField string `json:"additionalField"`
	Quantity        string `json:"quantity"`
	UnitPrice       string `json:"unitPrice"`
	TotalAmount     string `json:"totalAmount"`
	PaymentMethod   string `json:"paymentMethod"`
	Status          string `json:"status"`
}

// IsSummary reports whether the row is the per-order total row.
func (r OrderRow) IsSummary() bool {
	return r.ProductName == SummaryProductName
}
