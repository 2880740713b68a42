package order

import (
	"context"

	"storefront/internal/domain"
)

// AppendResult describes a successful append.
type AppendResult struct {
	RowsAdded int
}

// Store persists orders as rows: one per line item plus one summary row.
type Store interface {
	Append(ctx context.Context, order domain.Order) (AppendResult, error)
	UpdateStatus(ctx context.Context, orderID, status string) (int, error)
	ListAll(ctx context.Context) ([]domain.OrderRow, error)
}
