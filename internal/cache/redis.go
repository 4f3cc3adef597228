package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iamshihab2020/omnicore-pos/internal/domain"
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
		cartTTL: 12 * time.Hour,
	}
}

// RedisCache backs both the counter configuration cache and the open-cart
// snapshot. Counter entries get TTL jitter to spread expiry; cart snapshots
// live long enough to survive a shift.
type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
	cartTTL time.Duration
}

func (r *RedisCache) GetCart(ctx context.Context, counterID string) ([]domain.CartLine, error) {
	data, err := r.client.Get(ctx, cartKey(counterID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}

	return lines, nil
}

func (r *RedisCache) SetCart(ctx context.Context, counterID string, lines []domain.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(counterID), string(data), r.cartTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) DeleteCart(ctx context.Context, counterID string) error {
	if err := r.client.Del(ctx, cartKey(counterID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisCache) GetCounter(ctx context.Context, id string) (*domain.Counter, error) {
	data, err := r.client.Get(ctx, counterKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var counter domain.Counter
	if err := json.Unmarshal(data, &counter); err != nil {
		return nil, fmt.Errorf("unmarshal counter failed: %w", err)
	}

	return &counter, nil
}

func (r *RedisCache) SetCounter(ctx context.Context, counter *domain.Counter) error {
	data, err := json.Marshal(counter)
	if err != nil {
		return fmt.Errorf("marshal counter failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	if err := r.client.Set(ctx, counterKey(counter.ID), string(data), r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) DeleteCounter(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, counterKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cartKey(counterID string) string {
	return fmt.Sprintf("pos:cart:%s", counterID)
}

func counterKey(id string) string {
	return fmt.Sprintf("pos:counter:%s", id)
}
