// Package publisher emits order-completed events to Kafka.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"

	"github.com/iamshihab2020/omnicore-pos/internal/domain"
)

const topic = "pos-orders"

// OrderCompletedEvent is the wire payload consumed by downstream reporting.
type OrderCompletedEvent struct {
	OrderID       string             `json:"order_id"`
	InvoiceNo     string             `json:"invoice_no"`
	CounterID     string             `json:"counter_id"`
	CounterName   string             `json:"counter_name"`
	OrderType     string             `json:"order_type"`
	PaymentMethod string             `json:"payment_method"`
	Items         []domain.OrderItem `json:"items"`
	Subtotal      string             `json:"subtotal"`
	TaxTotal      string             `json:"tax_total"`
	GrossTotal    string             `json:"gross_total"`
	Paid          string             `json:"paid"`
	Change        string             `json:"change"`
	CompletedAt   time.Time          `json:"completed_at"`
}

// MessageWriter is the kafka.Writer surface the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OrderPublisher writes order events behind a circuit breaker so a dead
// broker cannot stall checkout; publishing is best-effort by contract.
type OrderPublisher struct {
	writer  MessageWriter
	breaker *gobreaker.CircuitBreaker[any]
	closer  func() error
}

func NewOrderPublisher(brokers ...string) *OrderPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	p := NewOrderPublisherWithWriter(w)
	p.closer = w.Close
	return p
}

// NewOrderPublisherWithWriter wires a custom writer, used by tests.
func NewOrderPublisherWithWriter(w MessageWriter) *OrderPublisher {
	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "order-publisher",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("%s breaker %s -> %s", name, from, to)
		},
	})
	return &OrderPublisher{writer: w, breaker: breaker}
}

func (p *OrderPublisher) PublishOrderCompleted(ctx context.Context, order *domain.Order) error {
	payload, err := json.Marshal(eventFromOrder(order))
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID.String()), // order id for partition ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.completed")},
		},
	}

	_, err = p.breaker.Execute(func() (any, error) {
		return nil, p.writer.WriteMessages(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}

func (p *OrderPublisher) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer()
}

func eventFromOrder(order *domain.Order) OrderCompletedEvent {
	return OrderCompletedEvent{
		OrderID:       order.ID.String(),
		InvoiceNo:     order.InvoiceNo,
		CounterID:     order.CounterID,
		CounterName:   order.CounterName,
		OrderType:     string(order.OrderType),
		PaymentMethod: string(order.PaymentMethod),
		Items:         order.Items,
		Subtotal:      order.Subtotal.StringFixed(2),
		TaxTotal:      order.TaxTotal.StringFixed(2),
		GrossTotal:    order.GrossTotal.StringFixed(2),
		Paid:          order.Paid.StringFixed(2),
		Change:        order.Change.StringFixed(2),
		CompletedAt:   order.CreatedAt,
	}
}
