package seed

import (
	"context"
	"testing"

	"storefront/internal/catalog"
	orderrepo "storefront/internal/repository/order"
)

func TestApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	store := orderrepo.NewMemory(nil)

	added, err := Apply(ctx, store, cat, nil)
	if err != nil || !added {
		t.Fatalf("first apply: added=%v err=%v", added, err)
	}
	added, err = Apply(ctx, store, cat, nil)
	if err != nil || added {
		t.Fatalf("second apply: added=%v err=%v", added, err)
	}

	rows, _ := store.ListAll(ctx)
	if len(rows) != 2 {
		t.Fatalf("expected item and summary rows, got %d", len(rows))
	}
	if rows[1].TotalAmount != "$299.99" {
		t.Fatalf("unexpected total %q", rows[1].TotalAmount)
	}
}
