// Package idempotency remembers which order id a client submission key
// produced so a retried submission does not append a second order.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL        = 24 * time.Hour
	defaultPendingTTL = time.Minute
	pendingPrefix     = "pending:"
)

// Reservation is the state a key is bound to.
type Reservation struct {
	OrderID string
	// Committed is false while the first submission is still persisting.
	Committed bool
}

// Guard reserves submission keys. A key moves from pending to committed
// only after the order rows were stored.
type Guard interface {
	// Reserve binds key to orderID as pending. When the key is already bound
	// it returns the existing reservation and reserved=false.
	Reserve(ctx context.Context, key, orderID string) (existing Reservation, reserved bool, err error)
	// Commit marks the key as bound to a stored order.
	Commit(ctx context.Context, key, orderID string) error
	// Release forgets a key whose submission did not persist.
	Release(ctx context.Context, key string) error
}

type redisGuard struct {
	client     *redis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

// NewRedis keeps committed keys for ttl. Pending keys expire after
// pendingTTL so a crashed submission does not block its key for long.
func NewRedis(client *redis.Client, ttl, pendingTTL time.Duration) Guard {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if pendingTTL <= 0 {
		pendingTTL = defaultPendingTTL
	}
	return &redisGuard{client: client, ttl: ttl, pendingTTL: pendingTTL}
}

func (g *redisGuard) Reserve(ctx context.Context, key, orderID string) (Reservation, bool, error) {
	ok, err := g.client.SetNX(ctx, redisKey(key), pendingPrefix+orderID, g.pendingTTL).Result()
	if err != nil {
		return Reservation{}, false, fmt.Errorf("redis setnx: %w", err)
	}
	if ok {
		return Reservation{OrderID: orderID}, true, nil
	}
	value, err := g.client.Get(ctx, redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET; try once more
		ok, err = g.client.SetNX(ctx, redisKey(key), pendingPrefix+orderID, g.pendingTTL).Result()
		if err != nil {
			return Reservation{}, false, fmt.Errorf("redis setnx: %w", err)
		}
		if !ok {
			return Reservation{}, false, fmt.Errorf("redis setnx: key %q contended", key)
		}
		return Reservation{OrderID: orderID}, true, nil
	}
	if err != nil {
		return Reservation{}, false, fmt.Errorf("redis get: %w", err)
	}
	return parse(value), false, nil
}

func (g *redisGuard) Commit(ctx context.Context, key, orderID string) error {
	if err := g.client.Set(ctx, redisKey(key), orderID, g.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (g *redisGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func redisKey(key string) string {
	return "order-idempotency:" + key
}

func parse(value string) Reservation {
	if id, ok := strings.CutPrefix(value, pendingPrefix); ok {
		return Reservation{OrderID: id}
	}
	return Reservation{OrderID: value, Committed: true}
}

type memoryEntry struct {
	value   string
	expires time.Time
}

// Memory is an in-process Guard with the same expiry rules as the Redis one.
type Memory struct {
	mu         sync.Mutex
	keys       map[string]memoryEntry
	ttl        time.Duration
	pendingTTL time.Duration
	now        func() time.Time
}

func NewMemory(ttl, pendingTTL time.Duration) *Memory {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if pendingTTL <= 0 {
		pendingTTL = defaultPendingTTL
	}
	return &Memory{keys: make(map[string]memoryEntry), ttl: ttl, pendingTTL: pendingTTL, now: time.Now}
}

func (m *Memory) Reserve(_ context.Context, key, orderID string) (Reservation, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.evict(now)
	if e, ok := m.keys[key]; ok {
		return parse(e.value), false, nil
	}
	m.keys[key] = memoryEntry{value: pendingPrefix + orderID, expires: now.Add(m.pendingTTL)}
	return Reservation{OrderID: orderID}, true, nil
}

func (m *Memory) Commit(_ context.Context, key, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = memoryEntry{value: orderID, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *Memory) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	return nil
}

// evict drops expired keys. Callers hold mu.
func (m *Memory) evict(now time.Time) {
	for k, e := range m.keys {
		if !now.Before(e.expires) {
			delete(m.keys, k)
		}
	}
}
