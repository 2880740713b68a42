package session

import (
	"context"
	"sync"

	"storefront/internal/cart"
)

// Memory keeps carts in process. Used when no Redis address is configured.
type Memory struct {
	mu    sync.Mutex
	carts map[string]cart.State
}

func NewMemory() *Memory {
	return &Memory{carts: make(map[string]cart.State)}
}

func (m *Memory) Get(_ context.Context, sessionID string) (cart.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.carts[sessionID]
	if !ok {
		return cart.Empty(), nil
	}
	return cart.Restore(state).State(), nil
}

func (m *Memory) Save(_ context.Context, sessionID string, state cart.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[sessionID] = cart.Restore(state).State()
	return nil
}

func (m *Memory) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}
