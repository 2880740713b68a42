package order

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
	"storefront/internal/migrate"
)

func TestPostgres_AppendListUpdate(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool, nil); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	store := NewPostgres(pool, nil)
	order := sampleOrder()
	res, err := store.Append(ctx, order)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if res.RowsAdded != 3 {
		t.Fatalf("expected 3 rows added, got %d", res.RowsAdded)
	}

	rows, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(rows) != 3 || rows[0].ProductName != "Product A" || !rows[2].IsSummary() || rows[2].TotalAmount != "$27.50" {
		t.Fatalf("unexpected rows %+v", rows)
	}

	n, err := store.UpdateStatus(ctx, order.ID, "Paid")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 rows updated, got %d", n)
	}

	if _, err := store.UpdateStatus(ctx, "ORDER-missing", "Paid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE order_rows RESTART IDENTITY`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
