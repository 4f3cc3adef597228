package cache

import (
	"context"
	"errors"

	"github.com/iamshihab2020/omnicore-pos/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// CartCache stores the open cart per counter so a terminal restart resumes
// the order in progress.
type CartCache interface {
	GetCart(ctx context.Context, counterID string) ([]domain.CartLine, error)
	SetCart(ctx context.Context, counterID string, lines []domain.CartLine) error
	DeleteCart(ctx context.Context, counterID string) error
}

// CounterCache is a read-through cache for counter configuration.
type CounterCache interface {
	GetCounter(ctx context.Context, id string) (*domain.Counter, error)
	SetCounter(ctx context.Context, counter *domain.Counter) error
	DeleteCounter(ctx context.Context, id string) error
}
