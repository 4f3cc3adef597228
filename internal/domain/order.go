package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaxLine is one applied tax in a totals breakdown.
type TaxLine struct {
	Name   string  `json:"name"`
	Rate   Decimal `json:"rate"`
	Amount Decimal `json:"amount"`
}

// Totals is the derived pricing snapshot for the current cart. Recomputed
// fresh after every mutation, never stored.
type Totals struct {
	Subtotal   Decimal   `json:"subtotal"`
	TaxLines   []TaxLine `json:"tax_breakdown"`
	GrossTotal Decimal   `json:"gross_total"`
}

// TaxTotal is the sum of all breakdown amounts.
func (t Totals) TaxTotal() Decimal {
	sum := Decimal{}
	for _, line := range t.TaxLines {
		sum = sum.Add(line.Amount)
	}
	return sum
}

// OrderItem is a sold line as recorded on a completed order.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   Decimal `json:"unit_price"`
	Subtotal    Decimal `json:"subtotal"`
}

// Order is a completed sale. Built once at checkout from the cart, totals
// and payment snapshot, then persisted and published.
type Order struct {
	ID            uuid.UUID     `json:"id"`
	InvoiceNo     string        `json:"invoice_no"`
	CounterID     string        `json:"counter_id"`
	CounterName   string        `json:"counter_name"`
	OrderType     OrderType     `json:"order_type"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Items         []OrderItem   `json:"items"`
	Subtotal      Decimal       `json:"subtotal"`
	TaxTotal      Decimal       `json:"tax_total"`
	GrossTotal    Decimal       `json:"gross_total"`
	Paid          Decimal       `json:"paid"`
	Change        Decimal       `json:"change"`
	CreatedAt     time.Time     `json:"created_at"`
}
