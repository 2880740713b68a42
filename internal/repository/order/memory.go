package order

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"storefront/internal/domain"
)

// Memory keeps orders as a sheet of string cells with a header row.
type Memory struct {
	mu     sync.Mutex
	sheet  [][]string
	logger *zap.Logger
}

func NewMemory(logger *zap.Logger) *Memory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Memory{logger: logger}
}

func (m *Memory) ensureHeaders() {
	if len(m.sheet) == 0 {
		m.sheet = append(m.sheet, Headers())
	}
}

func (m *Memory) Append(ctx context.Context, o domain.Order) (AppendResult, error) {
	if err := ctx.Err(); err != nil {
		return AppendResult{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensureHeaders()
	rows := RowsForOrder(o)
	for _, row := range rows {
		m.sheet = append(m.sheet, Cells(row))
	}
	m.logger.Debug("order rows appended", zap.String("order_id", o.ID), zap.Int("rows", len(rows)))
	return AppendResult{RowsAdded: len(rows)}, nil
}

func (m *Memory) UpdateStatus(ctx context.Context, orderID, status string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	updated := 0
	for i := 1; i < len(m.sheet); i++ {
		row := m.sheet[i]
		if len(row) > colOrderID && row[colOrderID] == orderID {
			for len(row) <= colStatus {
				row = append(row, "")
			}
			row[colStatus] = status
			m.sheet[i] = row
			updated++
		}
	}
	if updated == 0 {
		return 0, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}
	return updated, nil
}

func (m *Memory) ListAll(ctx context.Context) ([]domain.OrderRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sheet) <= 1 {
		return []domain.OrderRow{}, nil
	}
	rows := make([]domain.OrderRow, 0, len(m.sheet)-1)
	for i, cells := range m.sheet[1:] {
		// sheet rows are 1-based and row 1 holds the headers
		rows = append(rows, ParseRow(cells, i+2))
	}
	return rows, nil
}
