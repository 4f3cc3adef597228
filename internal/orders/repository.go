// Package orders persists completed sales.
package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/iamshihab2020/omnicore-pos/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	SaveOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Order, error)
}

type Repository struct {
	db *sql.DB
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{db: conn}
}

func (r *Repository) SaveOrder(ctx context.Context, order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `INSERT INTO orders (id, invoice_no, counter_id, counter_name, order_type, payment_method,
	                              subtotal, tax_total, gross_total, paid, change_due, items, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = r.db.ExecContext(ctx, query,
		order.ID.String(),
		order.InvoiceNo,
		order.CounterID,
		order.CounterName,
		string(order.OrderType),
		string(order.PaymentMethod),
		order.Subtotal.StringFixed(2),
		order.TaxTotal.StringFixed(2),
		order.GrossTotal.StringFixed(2),
		order.Paid.StringFixed(2),
		order.Change.StringFixed(2),
		itemsJSON,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *Repository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT id, invoice_no, counter_id, counter_name, order_type, payment_method,
	                 subtotal, tax_total, gross_total, paid, change_due, items, created_at
	          FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}
	return order, nil
}

// ListRecent returns the latest completed orders, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]*domain.Order, error) {
	query := `SELECT id, invoice_no, counter_id, counter_name, order_type, payment_method,
	                 subtotal, tax_total, gross_total, paid, change_due, items, created_at
	          FROM orders ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent orders: %w", err)
	}
	defer rows.Close()

	var result []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		result = append(result, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order                          domain.Order
		id, orderType, paymentMethod   string
		subtotal, taxTotal, grossTotal string
		paid, change                   string
		itemsJSON                      []byte
	)

	err := row.Scan(
		&id,
		&order.InvoiceNo,
		&order.CounterID,
		&order.CounterName,
		&orderType,
		&paymentMethod,
		&subtotal,
		&taxTotal,
		&grossTotal,
		&paid,
		&change,
		&itemsJSON,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if order.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid order id %q: %w", id, err)
	}
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}

	order.OrderType = domain.OrderType(orderType)
	order.PaymentMethod = domain.PaymentMethod(paymentMethod)
	order.Subtotal = domain.ParseDecimal(subtotal)
	order.TaxTotal = domain.ParseDecimal(taxTotal)
	order.GrossTotal = domain.ParseDecimal(grossTotal)
	order.Paid = domain.ParseDecimal(paid)
	order.Change = domain.ParseDecimal(change)

	return &order, nil
}
