package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamshihab2020/omnicore-pos/internal/domain"
)

func setupRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client), mr
}

func sampleLines() []domain.CartLine {
	return []domain.CartLine{
		{
			Product: domain.Product{
				ID:    "p1",
				Name:  "Beef Burger",
				Price: domain.DecimalFromInt(220),
			},
			Quantity: 2,
		},
	}
}

func TestCartRoundTrip(t *testing.T) {
	c, _ := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetCart(ctx, "c1", sampleLines()))

	lines, err := c.GetCart(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "220", lines[0].Product.Price.String())
}

func TestGetCartMiss(t *testing.T) {
	c, _ := setupRedisCache(t)

	_, err := c.GetCart(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestDeleteCart(t *testing.T) {
	c, _ := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetCart(ctx, "c1", sampleLines()))
	require.NoError(t, c.DeleteCart(ctx, "c1"))

	_, err := c.GetCart(ctx, "c1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCartExpiry(t *testing.T) {
	c, mr := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetCart(ctx, "c1", sampleLines()))
	mr.FastForward(13 * time.Hour)

	_, err := c.GetCart(ctx, "c1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCounterRoundTrip(t *testing.T) {
	c, _ := setupRedisCache(t)
	ctx := context.Background()

	counter := &domain.Counter{
		ID:     "c1",
		Name:   "Counter 1",
		Status: domain.CounterStatusActive,
		Taxes: []domain.TaxRate{
			{ID: "t1", Name: "VAT", Rate: domain.DecimalFromInt(5), IsActive: true},
		},
	}
	require.NoError(t, c.SetCounter(ctx, counter))

	got, err := c.GetCounter(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Counter 1", got.Name)
	require.Len(t, got.Taxes, 1)
	assert.Equal(t, "5", got.Taxes[0].Rate.String())
}

func TestCounterMissAndDelete(t *testing.T) {
	c, _ := setupRedisCache(t)
	ctx := context.Background()

	_, err := c.GetCounter(ctx, "c1")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.SetCounter(ctx, &domain.Counter{ID: "c1", Name: "Counter 1"}))
	require.NoError(t, c.DeleteCounter(ctx, "c1"))

	_, err = c.GetCounter(ctx, "c1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCounterTTLJitter(t *testing.T) {
	c, mr := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetCounter(ctx, &domain.Counter{ID: "c1", Name: "Counter 1"}))

	ttl := mr.TTL(counterKey("c1"))
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.Less(t, ttl, 20*time.Minute)
}
