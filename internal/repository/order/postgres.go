package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

var rowColumns = []string{
	"order_id",
	"date_time",
	"customer_name",
	"customer_surname",
	"phone_number",
	"address",
	"product_name",
	"product_type",
	"product_option",
	"additional_field",
	"quantity",
	"unit_price",
	"total_amount",
	"payment_method",
	"status",
}

type postgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres stores order rows in the order_rows table.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresStore{pool: pool, logger: logger}
}

func (s *postgresStore) Append(ctx context.Context, o domain.Order) (AppendResult, error) {
	rows := RowsForOrder(o)
	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		cells := Cells(row)
		vals := make([]any, len(cells))
		for i, c := range cells {
			vals[i] = c
		}
		values = append(values, vals)
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return AppendResult{}, err
	}
	defer tx.Rollback(ctx)

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"order_rows"}, rowColumns, pgx.CopyFromRows(values))
	if err != nil {
		s.logger.Error("order store: append failed", zap.String("order_id", o.ID), zap.Error(err))
		return AppendResult{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return AppendResult{}, err
	}
	s.logger.Info("order store: appended", zap.String("order_id", o.ID), zap.Int64("rows", n))
	return AppendResult{RowsAdded: int(n)}, nil
}

func (s *postgresStore) UpdateStatus(ctx context.Context, orderID, status string) (int, error) {
	cmd, err := s.pool.Exec(ctx, `
UPDATE order_rows
SET status = $1
WHERE order_id = $2
`, status, orderID)
	if err != nil {
		s.logger.Error("order store: update status failed", zap.String("order_id", orderID), zap.Error(err))
		return 0, err
	}
	if cmd.RowsAffected() == 0 {
		return 0, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}
	s.logger.Info("order store: status updated", zap.String("order_id", orderID), zap.String("status", status), zap.Int64("rows", cmd.RowsAffected()))
	return int(cmd.RowsAffected()), nil
}

func (s *postgresStore) ListAll(ctx context.Context) ([]domain.OrderRow, error) {
	const q = `
SELECT row_number, order_id, date_time, customer_name, customer_surname, phone_number, address,
       product_name, product_type, product_option, additional_field, quantity, unit_price,
       total_amount, payment_method, status
FROM order_rows
ORDER BY row_number ASC
`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.OrderRow{}
	for rows.Next() {
		var (
			rowNumber int64
			r         domain.OrderRow
		)
		if err := rows.Scan(
			&rowNumber,
			&r.OrderID,
			&r.DateTime,
			&r.CustomerName,
			&r.CustomerSurname,
			&r.PhoneNumber,
			&r.Address,
			&r.ProductName,
			&r.ProductType,
			&r.ProductOption,
			&r.AdditionalField,
			&r.Quantity,
			&r.UnitPrice,
			&r.TotalAmount,
			&r.PaymentMethod,
			&r.Status,
		); err != nil {
			return nil, err
		}
		r.RowNumber = int(rowNumber)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
