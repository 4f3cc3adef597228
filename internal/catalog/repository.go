// Package catalog serves counters, menu items and tax configuration.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iamshihab2020/omnicore-pos/internal/domain"
)

var ErrCounterNotFound = errors.New("counter not found")

type CatalogRepository interface {
	ListCounters(ctx context.Context) ([]domain.Counter, error)
	GetCounter(ctx context.Context, id string) (*domain.Counter, error)
}

type Repository struct {
	db *sql.DB
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{db: conn}
}

// ListCounters returns all counters without their item and tax assignments.
func (r *Repository) ListCounters(ctx context.Context) ([]domain.Counter, error) {
	query := `
		SELECT id, name, location, description, status, created_at, updated_at
		FROM counters
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query counters: %w", err)
	}
	defer rows.Close()

	var counters []domain.Counter
	for rows.Next() {
		var c domain.Counter
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Location,
			&c.Description,
			&c.Status,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan counter: %w", err)
		}
		counters = append(counters, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return counters, nil
}

// GetCounter returns one counter with its assigned menu items and tax rates
// in assignment order.
func (r *Repository) GetCounter(ctx context.Context, id string) (*domain.Counter, error) {
	query := `
		SELECT id, name, location, description, status, created_at, updated_at
		FROM counters
		WHERE id = $1
	`

	var c domain.Counter
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Location,
		&c.Description,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCounterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query counter: %w", err)
	}

	if c.Items, err = r.counterItems(ctx, id); err != nil {
		return nil, err
	}
	if c.Taxes, err = r.counterTaxes(ctx, id); err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *Repository) counterItems(ctx context.Context, counterID string) ([]domain.Product, error) {
	query := `
		SELECT i.id, i.name, i.category, i.category_name, i.price, i.image, i.description, i.is_active
		FROM menu_items i
		JOIN counter_items ci ON ci.item_id = i.id
		WHERE ci.counter_id = $1
		ORDER BY ci.position, i.name
	`

	rows, err := r.db.QueryContext(ctx, query, counterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query counter items: %w", err)
	}
	defer rows.Close()

	var items []domain.Product
	for rows.Next() {
		var p domain.Product
		var price string
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Category,
			&p.CategoryName,
			&price,
			&p.Image,
			&p.Description,
			&p.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		p.Price = domain.ParseDecimal(price)
		items = append(items, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

func (r *Repository) counterTaxes(ctx context.Context, counterID string) ([]domain.TaxRate, error) {
	query := `
		SELECT t.id, t.name, t.rate, t.description, t.is_active
		FROM vat_taxes t
		JOIN counter_taxes ct ON ct.tax_id = t.id
		WHERE ct.counter_id = $1
		ORDER BY ct.position, t.name
	`

	rows, err := r.db.QueryContext(ctx, query, counterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query counter taxes: %w", err)
	}
	defer rows.Close()

	var taxes []domain.TaxRate
	for rows.Next() {
		var t domain.TaxRate
		var rate string
		err := rows.Scan(
			&t.ID,
			&t.Name,
			&rate,
			&t.Description,
			&t.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax rate: %w", err)
		}
		t.Rate = domain.ParseDecimal(rate)
		taxes = append(taxes, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return taxes, nil
}
