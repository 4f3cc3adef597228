package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamshihab2020/omnicore-pos/internal/cache"
	"github.com/iamshihab2020/omnicore-pos/internal/domain"
)

type mockRepo struct {
	mu       sync.Mutex
	counters map[string]*domain.Counter
	getCalls int
}

func (m *mockRepo) ListCounters(_ context.Context) ([]domain.Counter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Counter
	for _, c := range m.counters {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockRepo) GetCounter(_ context.Context, id string) (*domain.Counter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	c, ok := m.counters[id]
	if !ok {
		return nil, ErrCounterNotFound
	}
	copied := *c
	return &copied, nil
}

type mockCounterCache struct {
	mu       sync.Mutex
	counters map[string]*domain.Counter
}

func newMockCounterCache() *mockCounterCache {
	return &mockCounterCache{counters: map[string]*domain.Counter{}}
}

func (m *mockCounterCache) GetCounter(_ context.Context, id string) (*domain.Counter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.counters[id]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return c, nil
}

func (m *mockCounterCache) SetCounter(_ context.Context, counter *domain.Counter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[counter.ID] = counter
	return nil
}

func (m *mockCounterCache) DeleteCounter(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.counters, id)
	return nil
}

func (m *mockCounterCache) has(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.counters[id]
	return ok
}

func TestActiveCountersFiltersInactive(t *testing.T) {
	repo := &mockRepo{counters: map[string]*domain.Counter{
		"c1": {ID: "c1", Name: "Counter 1", Status: domain.CounterStatusActive},
		"c2": {ID: "c2", Name: "Counter 2", Status: "inactive"},
	}}
	svc := NewService(repo, nil)

	counters, err := svc.ActiveCounters(context.Background())
	require.NoError(t, err)
	require.Len(t, counters, 1)
	assert.Equal(t, "c1", counters[0].ID)
}

func TestGetCounterCacheMissFillsCache(t *testing.T) {
	repo := &mockRepo{counters: map[string]*domain.Counter{
		"c1": {ID: "c1", Name: "Counter 1", Status: domain.CounterStatusActive},
	}}
	counterCache := newMockCounterCache()
	svc := NewService(repo, counterCache)

	counter, err := svc.GetCounter(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Counter 1", counter.Name)
	assert.Equal(t, 1, repo.getCalls)

	// The cache fill happens asynchronously.
	assert.Eventually(t, func() bool {
		return counterCache.has("c1")
	}, time.Second, 5*time.Millisecond)
}

func TestGetCounterCacheHitSkipsRepo(t *testing.T) {
	repo := &mockRepo{counters: map[string]*domain.Counter{}}
	counterCache := newMockCounterCache()
	require.NoError(t, counterCache.SetCounter(context.Background(),
		&domain.Counter{ID: "c1", Name: "Cached Counter"}))
	svc := NewService(repo, counterCache)

	counter, err := svc.GetCounter(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Cached Counter", counter.Name)
	assert.Equal(t, 0, repo.getCalls)
}

func TestGetCounterNotFoundPassthrough(t *testing.T) {
	repo := &mockRepo{counters: map[string]*domain.Counter{}}
	svc := NewService(repo, newMockCounterCache())

	_, err := svc.GetCounter(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCounterNotFound)
}

func TestInvalidate(t *testing.T) {
	counterCache := newMockCounterCache()
	require.NoError(t, counterCache.SetCounter(context.Background(),
		&domain.Counter{ID: "c1", Name: "Counter 1"}))
	svc := NewService(&mockRepo{}, counterCache)

	svc.Invalidate(context.Background(), "c1")
	assert.False(t, counterCache.has("c1"))
}
