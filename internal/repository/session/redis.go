package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/cart"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis stores each cart as JSON under cart:<session> with a sliding TTL.
func NewRedis(client *redis.Client, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &redisStore{client: client, ttl: ttl}
}

func (r *redisStore) Get(ctx context.Context, sessionID string) (cart.State, error) {
	data, err := r.client.Get(ctx, cacheKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.Empty(), nil
	}
	if err != nil {
		return cart.State{}, fmt.Errorf("redis get cart: %w", err)
	}

	var state cart.State
	if err := json.Unmarshal(data, &state); err != nil {
		return cart.State{}, fmt.Errorf("unmarshal cart: %w", err)
	}
	return cart.Restore(state).State(), nil
}

func (r *redisStore) Save(ctx context.Context, sessionID string, state cart.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := r.client.Set(ctx, cacheKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

func (r *redisStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cacheKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete cart: %w", err)
	}
	return nil
}

func cacheKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
