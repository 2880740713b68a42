package session

import (
	"context"

	"storefront/internal/cart"
)

// Store saves cart state per session id. Get returns an empty cart for
// unknown sessions.
type Store interface {
	Get(ctx context.Context, sessionID string) (cart.State, error)
	Save(ctx context.Context, sessionID string, state cart.State) error
	Delete(ctx context.Context, sessionID string) error
}
