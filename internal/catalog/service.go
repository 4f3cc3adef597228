package catalog

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/iamshihab2020/omnicore-pos/internal/cache"
	"github.com/iamshihab2020/omnicore-pos/internal/domain"
)

// Service fronts the catalog repository with an optional read-through cache.
// Concurrent misses for the same counter are collapsed via singleflight so a
// cold cache cannot stampede the database.
type Service struct {
	repo  CatalogRepository
	cache cache.CounterCache
	sfg   singleflight.Group
}

func NewService(repo CatalogRepository, counterCache cache.CounterCache) *Service {
	return &Service{
		repo:  repo,
		cache: counterCache,
	}
}

// ActiveCounters lists the counters available for selection.
func (s *Service) ActiveCounters(ctx context.Context) ([]domain.Counter, error) {
	counters, err := s.repo.ListCounters(ctx)
	if err != nil {
		return nil, err
	}

	active := counters[:0]
	for _, c := range counters {
		if c.Status == domain.CounterStatusActive {
			active = append(active, c)
		}
	}
	return active, nil
}

// GetCounter returns the counter with its menu and tax assignment, consulting
// the cache first.
func (s *Service) GetCounter(ctx context.Context, id string) (*domain.Counter, error) {
	v, err, _ := s.sfg.Do(id, func() (interface{}, error) {
		if s.cache != nil {
			counter, err := s.cache.GetCounter(ctx, id)
			if err == nil {
				return counter, nil
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				log.Printf("counter cache get error: %v", err) // log cache error but continue
			}
		}

		counter, err := s.repo.GetCounter(ctx, id)
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			go func() {
				cacheCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if err := s.cache.SetCounter(cacheCtx, counter); err != nil {
					log.Printf("counter cache set error: %v", err)
				}
			}()
		}

		return counter, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Counter), nil
}

// Invalidate drops the cached entry for a counter.
func (s *Service) Invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteCounter(ctx, id); err != nil {
		log.Printf("counter cache invalidate error: %v", err)
	}
}
