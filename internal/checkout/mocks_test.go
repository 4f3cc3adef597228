package checkout

import (
	"context"
	"sync"

	"github.com/iamshihab2020/omnicore-pos/internal/domain"
)

type mockPrinter struct {
	mu       sync.Mutex
	receipts []string
	err      error
}

func (m *mockPrinter) Print(_ context.Context, receipt string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.receipts = append(m.receipts, receipt)
	return nil
}

func (m *mockPrinter) printed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.receipts...)
}

type mockRecorder struct {
	mu     sync.Mutex
	orders []*domain.Order
	err    error
}

func (m *mockRecorder) SaveOrder(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.orders = append(m.orders, order)
	return nil
}

func (m *mockRecorder) saved() []*domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Order(nil), m.orders...)
}

type mockPublisher struct {
	mu     sync.Mutex
	events []*domain.Order
	err    error
}

func (m *mockPublisher) PublishOrderCompleted(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, order)
	return nil
}

func (m *mockPublisher) published() []*domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Order(nil), m.events...)
}
