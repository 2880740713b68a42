// Package seed appends a demo order for manual testing of the admin routes.
package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
)

// DemoOrderID identifies the seeded order.
const DemoOrderID = "ORDER-0-DEMO00000"

type productSource interface {
	List() []domain.Product
}

// Apply appends the demo order unless it is already stored.
func Apply(ctx context.Context, store orderrepo.Store, products productSource, logger *zap.Logger) (bool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rows, err := store.ListAll(ctx)
	if err != nil {
		return false, fmt.Errorf("list orders: %w", err)
	}
	for _, r := range rows {
		if r.OrderID == DemoOrderID {
			logger.Info("demo order already present")
			return false, nil
		}
	}

	catalog := products.List()
	if len(catalog) == 0 {
		return false, fmt.Errorf("catalog is empty")
	}
	items := []domain.CartLineItem{{
		Product:        catalog[0],
		SelectedType:   "Personal",
		SelectedOption: "100M Credit",
		Quantity:       1,
	}}
	o := domain.Order{
		ID:        DemoOrderID,
		OrderDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		CustomerDetails: domain.CustomerDetails{
			Name:        "Demo",
			Surname:     "Customer",
			Address:     "1 Demo Street",
			PhoneNumber: "+10000000000",
		},
		Items:         items,
		Total:         domain.SumLines(items),
		PaymentMethod: domain.PaymentBankTransfer,
	}
	res, err := store.Append(ctx, o)
	if err != nil {
		return false, fmt.Errorf("append demo order: %w", err)
	}
	logger.Info("demo order seeded", zap.Int("rows", res.RowsAdded))
	return true, nil
}
