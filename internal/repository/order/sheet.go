package order

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// Column positions of the order sheet, A through O.
const (
	colOrderID = iota
	colDateTime
	colCustomerName
	colCustomerSurname
	colPhoneNumber
	colAddress
	colProductName
	colProductType
	colProductOption
	colAdditionalField
	colQuantity
	colUnitPrice
	colTotalAmount
	colPaymentMethod
	colStatus
	columnCount
)

var headers = [columnCount]string{
	colOrderID:         "Order ID",
	colDateTime:        "Date/Time",
	colCustomerName:    "Customer Name",
	colCustomerSurname: "Customer Surname",
	colPhoneNumber:     "Phone Number",
	colAddress:         "Address",
	colProductName:     "Product Name",
	colProductType:     "Product Type",
	colProductOption:   "Product Option",
	colAdditionalField: "Additional Field",
	colQuantity:        "Quantity",
	colUnitPrice:       "Unit Price",
	colTotalAmount:     "Total Amount",
	colPaymentMethod:   "Payment Method",
	colStatus:          "Status",
}

// Headers returns the header row of the order sheet.
func Headers() []string {
	return append([]string(nil), headers[:]...)
}

// RowsForOrder expands an order into its item rows followed by the summary row.
func RowsForOrder(o domain.Order) []domain.OrderRow {
	base := domain.OrderRow{
		OrderID:         o.ID,
		DateTime:        o.OrderDate.UTC().Format(time.RFC3339),
		CustomerName:    o.CustomerDetails.Name,
		CustomerSurname: o.CustomerDetails.Surname,
		PhoneNumber:     o.CustomerDetails.PhoneNumber,
		Address:         o.CustomerDetails.Address,
		PaymentMethod:   o.PaymentMethod.Label(),
		Status:          domain.StatusPendingPayment,
	}

	rows := make([]domain.OrderRow, 0, len(o.Items)+1)
	for _, item := range o.Items {
		row := base
		row.ProductName = item.Product.Name
		row.ProductType = item.SelectedType
		row.ProductOption = item.SelectedOption
		row.AdditionalField = item.SelectedField
		row.Quantity = strconv.Itoa(item.Quantity)
		row.UnitPrice = domain.FormatMoney(item.Product.Price)
		row.TotalAmount = domain.FormatMoney(item.LineTotal())
		rows = append(rows, row)
	}

	summary := base
	summary.ProductName = domain.SummaryProductName
	summary.Quantity = strconv.Itoa(o.TotalQuantity())
	summary.TotalAmount = domain.FormatMoney(o.Total)
	return append(rows, summary)
}

// Cells encodes a row in column order.
func Cells(r domain.OrderRow) []string {
	var c [columnCount]string
	c[colOrderID] = r.OrderID
	c[colDateTime] = r.DateTime
	c[colCustomerName] = r.CustomerName
	c[colCustomerSurname] = r.CustomerSurname
	c[colPhoneNumber] = r.PhoneNumber
	c[colAddress] = r.Address
	c[colProductName] = r.ProductName
	c[colProductType] = r.ProductType
	c[colProductOption] = r.ProductOption
	c[colAdditionalField] = r.AdditionalField
	c[colQuantity] = r.Quantity
	c[colUnitPrice] = r.UnitPrice
	c[colTotalAmount] = r.TotalAmount
	c[colPaymentMethod] = r.PaymentMethod
	c[colStatus] = r.Status
	return c[:]
}

// ParseRow decodes cells read from the sheet. Missing columns decode as
// empty strings.
func ParseRow(cells []string, rowNumber int) domain.OrderRow {
	cell := func(i int) string {
		if i < 0 || i >= len(cells) {
			return ""
		}
		return cells[i]
	}
	return domain.OrderRow{
		RowNumber:       rowNumber,
		OrderID:         cell(colOrderID),
		DateTime:        cell(colDateTime),
		CustomerName:    cell(colCustomerName),
		CustomerSurname: cell(colCustomerSurname),
		PhoneNumber:     cell(colPhoneNumber),
		Address:         cell(colAddress),
		ProductName:     cell(colProductName),
		ProductType:     cell(colProductType),
		ProductOption:   cell(colProductOption),
		AdditionalField: cell(colAdditionalField),
		Quantity:        cell(colQuantity),
		UnitPrice:       cell(colUnitPrice),
		TotalAmount:     cell(colTotalAmount),
		PaymentMethod:   cell(colPaymentMethod),
		Status:          cell(colStatus),
	}
}

// OrderFromRows rebuilds an order from its stored rows. Product ids are not
// stored, so rebuilt products carry only name and unit price.
func OrderFromRows(rows []domain.OrderRow) (domain.Order, error) {
	if len(rows) == 0 {
		return domain.Order{}, domain.ErrNotFound
	}
	first := rows[0]
	o := domain.Order{
		ID: first.OrderID,
		CustomerDetails: domain.CustomerDetails{
			Name:        first.CustomerName,
			Surname:     first.CustomerSurname,
			Address:     first.Address,
			PhoneNumber: first.PhoneNumber,
		},
		PaymentMethod: domain.PaymentMethodFromLabel(first.PaymentMethod),
	}
	if t, err := time.Parse(time.RFC3339, first.DateTime); err == nil {
		o.OrderDate = t
	}

	var (
		total    decimal.Decimal
		hasTotal bool
	)
	for _, r := range rows {
		if r.OrderID != o.ID {
			return domain.Order{}, fmt.Errorf("row %d belongs to order %s, not %s", r.RowNumber, r.OrderID, o.ID)
		}
		if r.IsSummary() {
			amount, err := parseMoney(r.TotalAmount)
			if err != nil {
				return domain.Order{}, fmt.Errorf("row %d total: %w", r.RowNumber, err)
			}
			total, hasTotal = amount, true
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(r.Quantity))
		if err != nil {
			return domain.Order{}, fmt.Errorf("row %d quantity: %w", r.RowNumber, err)
		}
		price, err := parseMoney(r.UnitPrice)
		if err != nil {
			return domain.Order{}, fmt.Errorf("row %d unit price: %w", r.RowNumber, err)
		}
		o.Items = append(o.Items, domain.CartLineItem{
			Product:        domain.Product{Name: r.ProductName, Price: price},
			SelectedType:   r.ProductType,
			SelectedOption: r.ProductOption,
			SelectedField:  r.AdditionalField,
			Quantity:       qty,
		})
	}
	if !hasTotal {
		total = domain.SumLines(o.Items)
	}
	o.Total = total
	return o, nil
}

func parseMoney(v string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(v), "$"))
}
