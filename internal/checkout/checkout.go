// Package checkout orchestrates the terminal session: selected counter,
// payment settings and the checkout sequence itself.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iamshihab2020/omnicore-pos/internal/cart"
	"github.com/iamshihab2020/omnicore-pos/internal/domain"
	"github.com/iamshihab2020/omnicore-pos/internal/payment"
	"github.com/iamshihab2020/omnicore-pos/internal/pricing"
	"github.com/iamshihab2020/omnicore-pos/internal/receipt"
)

var (
	ErrEmptyCart            = errors.New("cart is empty, nothing to checkout")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidOrderType     = errors.New("invalid order type")
)

const (
	// defaultPrintDelay paces the "processing" banner before the print
	// side effect takes over. The exact value is UX pacing, not a
	// correctness requirement.
	defaultPrintDelay = 500 * time.Millisecond

	completeBannerTTL = 4 * time.Second
)

// Printer is the platform print capability. Failures are not surfaced to the
// operator; the print dialog owns its own error reporting.
type Printer interface {
	Print(ctx context.Context, receipt string) error
}

// OrderRecorder persists completed orders.
type OrderRecorder interface {
	SaveOrder(ctx context.Context, order *domain.Order) error
}

// EventPublisher emits order-completed events to downstream consumers.
type EventPublisher interface {
	PublishOrderCompleted(ctx context.Context, order *domain.Order) error
}

// Config wires a Service. Orders and Publisher are optional; a terminal can
// run print-only.
type Config struct {
	Cart       *cart.Store
	Payments   *payment.Calculator
	Formatter  *receipt.Formatter
	Printer    Printer
	Orders     OrderRecorder
	Publisher  EventPublisher
	Restaurant domain.RestaurantInfo
	PrintDelay time.Duration    // 0 means the default pacing delay
	Now        func() time.Time // nil means time.Now
}

// Service is the terminal session. It owns the selected counter and its tax
// set, the payment method and order type, and runs checkout end to end.
type Service struct {
	cart       *cart.Store
	payments   *payment.Calculator
	formatter  *receipt.Formatter
	printer    Printer
	orders     OrderRecorder
	publisher  EventPublisher
	restaurant domain.RestaurantInfo
	delay      time.Duration
	now        func() time.Time

	mu            sync.Mutex
	counterID     string
	counterName   string
	products      []domain.Product
	taxes         []domain.TaxRate
	paymentMethod domain.PaymentMethod
	orderType     domain.OrderType
}

func NewService(cfg Config) *Service {
	delay := cfg.PrintDelay
	if delay == 0 {
		delay = defaultPrintDelay
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		cart:          cfg.Cart,
		payments:      cfg.Payments,
		formatter:     cfg.Formatter,
		printer:       cfg.Printer,
		orders:        cfg.Orders,
		publisher:     cfg.Publisher,
		restaurant:    cfg.Restaurant,
		delay:         delay,
		now:           now,
		paymentMethod: domain.PaymentCash,
		orderType:     domain.OrderDineIn,
	}
}

// SetCounter switches the terminal to a counter. The open cart belongs to
// the previous counter's menu, so it is cleared along with any banner.
func (s *Service) SetCounter(c domain.Counter) {
	s.mu.Lock()
	s.counterID = c.ID
	s.counterName = c.Name
	s.taxes = append([]domain.TaxRate(nil), c.Taxes...)
	s.products = s.products[:0]
	for _, p := range c.Items {
		if p.IsActive {
			s.products = append(s.products, p)
		}
	}
	s.mu.Unlock()

	s.cart.Reset()
	s.syncPayments()
}

// Products returns the active menu of the selected counter.
func (s *Service) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product(nil), s.products...)
}

// FindProduct resolves a product id against the selected counter's menu.
func (s *Service) FindProduct(id string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Counter returns the selected counter id and name.
func (s *Service) Counter() (id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counterID, s.counterName
}

// Taxes returns the tax rates of the selected counter.
func (s *Service) Taxes() []domain.TaxRate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TaxRate(nil), s.taxes...)
}

func (s *Service) SetPaymentMethod(m domain.PaymentMethod) error {
	if !m.Valid() {
		return ErrInvalidPaymentMethod
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paymentMethod = m
	return nil
}

func (s *Service) SetOrderType(t domain.OrderType) error {
	if !t.Valid() {
		return ErrInvalidOrderType
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderType = t
	return nil
}

// PaymentMethod and OrderType return the current settings.
func (s *Service) PaymentMethod() domain.PaymentMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paymentMethod
}

func (s *Service) OrderType() domain.OrderType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderType
}

// Totals recomputes the pricing snapshot from the live cart and pushes the
// gross total into the payment calculator. Callers invoke this after every
// mutation; there is no hidden dependency graph.
func (s *Service) Totals() domain.Totals {
	totals := pricing.ComputeTotals(s.cart.Lines(), s.Taxes())
	s.payments.SetGrossTotal(totals.GrossTotal)
	return totals
}

func (s *Service) syncPayments() {
	s.payments.SetGrossTotal(pricing.ComputeTotals(s.cart.Lines(), s.Taxes()).GrossTotal)
}

// RenderReceipt renders a preview of the receipt for the current cart state.
func (s *Service) RenderReceipt() string {
	totals := s.Totals()
	tendered, change := s.payments.Snapshot()
	return s.formatter.Render(receipt.Data{
		Lines:         s.cart.Lines(),
		Totals:        totals,
		Paid:          &tendered,
		Change:        change,
		PaymentMethod: s.PaymentMethod(),
		OrderType:     s.OrderType(),
		CounterName:   s.currentCounterName(),
		InvoiceNo:     invoiceNo(s.now()),
		Timestamp:     s.now(),
		Restaurant:    s.restaurant,
	})
}

// Checkout runs the full sequence: processing banner, pacing delay, receipt
// print, order record, order event, cart reset, completion banner. Print,
// persist and publish failures are logged and swallowed; the worst case is a
// sale that only exists on paper, which beats blocking the counter.
func (s *Service) Checkout(ctx context.Context) (*domain.Order, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	totals := s.Totals()
	tendered, change := s.payments.Snapshot()
	method := s.PaymentMethod()
	orderType := s.OrderType()
	counterID, counterName := s.Counter()
	now := s.now()

	s.cart.Notify("Processing checkout...", 0)

	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		s.cart.ClearNotification()
		return nil, ctx.Err()
	}

	order := buildOrder(lines, totals, tendered, change, method, orderType, counterID, counterName, now)

	text := s.formatter.Render(receipt.Data{
		Lines:         lines,
		Totals:        totals,
		Paid:          &tendered,
		Change:        change,
		PaymentMethod: method,
		OrderType:     orderType,
		CounterName:   counterName,
		InvoiceNo:     order.InvoiceNo,
		Timestamp:     now,
		Restaurant:    s.restaurant,
	})

	if err := s.printer.Print(ctx, text); err != nil {
		log.Printf("receipt print failed for invoice %s: %v", order.InvoiceNo, err)
	}

	if s.orders != nil {
		if err := s.orders.SaveOrder(ctx, order); err != nil {
			log.Printf("failed to record order %s: %v", order.ID, err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCompleted(ctx, order); err != nil {
			log.Printf("failed to publish order %s: %v", order.ID, err)
		}
	}

	s.cart.Reset()
	s.syncPayments()
	s.cart.Notify(fmt.Sprintf("Checkout complete! (%s, %s)", orderType, method), completeBannerTTL)

	return order, nil
}

func (s *Service) currentCounterName() string {
	_, name := s.Counter()
	return name
}

func buildOrder(
	lines []domain.CartLine,
	totals domain.Totals,
	tendered, change domain.Decimal,
	method domain.PaymentMethod,
	orderType domain.OrderType,
	counterID, counterName string,
	now time.Time,
) *domain.Order {
	items := make([]domain.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = domain.OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.Product.Price,
			Subtotal:    line.Total(),
		}
	}

	return &domain.Order{
		ID:            uuid.New(),
		InvoiceNo:     invoiceNo(now),
		CounterID:     counterID,
		CounterName:   counterName,
		OrderType:     orderType,
		PaymentMethod: method,
		Items:         items,
		Subtotal:      totals.Subtotal,
		TaxTotal:      totals.TaxTotal(),
		GrossTotal:    totals.GrossTotal,
		Paid:          tendered,
		Change:        change,
		CreatedAt:     now,
	}
}

// invoiceNo is the timestamp compacted to 14 digits, yyyymmddhhmmss.
func invoiceNo(t time.Time) string {
	return t.Format("20060102150405")
}
