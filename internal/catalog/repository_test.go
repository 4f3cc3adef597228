package catalog

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamshihab2020/omnicore-pos/internal/db"
)

func setupTestDB(t *testing.T) *sql.DB {
	conn, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.RunMigrations(conn, "../../migrations"))
	return conn
}

func seedCounter(t *testing.T, conn *sql.DB) {
	stmts := []string{
		`INSERT INTO counters (id, name, location, status) VALUES ('c1', 'Counter 1', 'Ground Floor', 'active')`,
		`INSERT INTO counters (id, name, location, status) VALUES ('c2', 'Counter 2', 'Rooftop', 'inactive')`,
		`INSERT INTO menu_items (id, name, category_name, price, is_active) VALUES ('p1', 'Beef Burger', 'Burgers', '220', 1)`,
		`INSERT INTO menu_items (id, name, category_name, price, is_active) VALUES ('p2', 'Lemonade', 'Drinks', '60.50', 1)`,
		`INSERT INTO menu_items (id, name, category_name, price, is_active) VALUES ('p3', 'Retired Dish', 'Legacy', '999', 0)`,
		`INSERT INTO vat_taxes (id, name, rate, is_active) VALUES ('t1', 'VAT', '5', 1)`,
		`INSERT INTO vat_taxes (id, name, rate, is_active) VALUES ('t2', 'SD', '2.5', 1)`,
		`INSERT INTO counter_items (counter_id, item_id, position) VALUES ('c1', 'p2', 1)`,
		`INSERT INTO counter_items (counter_id, item_id, position) VALUES ('c1', 'p1', 0)`,
		`INSERT INTO counter_items (counter_id, item_id, position) VALUES ('c1', 'p3', 2)`,
		`INSERT INTO counter_taxes (counter_id, tax_id, position) VALUES ('c1', 't2', 1)`,
		`INSERT INTO counter_taxes (counter_id, tax_id, position) VALUES ('c1', 't1', 0)`,
	}
	for _, stmt := range stmts {
		_, err := conn.Exec(stmt)
		require.NoError(t, err)
	}
}

func TestListCounters(t *testing.T) {
	conn := setupTestDB(t)
	seedCounter(t, conn)
	repo := NewRepository(conn)

	counters, err := repo.ListCounters(context.Background())
	require.NoError(t, err)
	require.Len(t, counters, 2)
	assert.Equal(t, "Counter 1", counters[0].Name)
	assert.Equal(t, "Counter 2", counters[1].Name)
	// The list view carries no assignments.
	assert.Empty(t, counters[0].Items)
	assert.Empty(t, counters[0].Taxes)
}

func TestGetCounter(t *testing.T) {
	conn := setupTestDB(t)
	seedCounter(t, conn)
	repo := NewRepository(conn)

	counter, err := repo.GetCounter(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Counter 1", counter.Name)
	assert.Equal(t, "Ground Floor", counter.Location)

	// Items and taxes come back in assignment order.
	require.Len(t, counter.Items, 3)
	assert.Equal(t, "p1", counter.Items[0].ID)
	assert.Equal(t, "p2", counter.Items[1].ID)
	assert.Equal(t, "p3", counter.Items[2].ID)
	assert.Equal(t, "220", counter.Items[0].Price.String())
	assert.Equal(t, "60.5", counter.Items[1].Price.String())
	assert.False(t, counter.Items[2].IsActive)

	require.Len(t, counter.Taxes, 2)
	assert.Equal(t, "VAT", counter.Taxes[0].Name)
	assert.Equal(t, "SD", counter.Taxes[1].Name)
	assert.Equal(t, "2.5", counter.Taxes[1].Rate.String())
}

func TestGetCounterNotFound(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewRepository(conn)

	counter, err := repo.GetCounter(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCounterNotFound)
	assert.Nil(t, counter)
}

func TestGetCounterNoAssignments(t *testing.T) {
	conn := setupTestDB(t)
	_, err := conn.Exec(`INSERT INTO counters (id, name) VALUES ('bare', 'Bare Counter')`)
	require.NoError(t, err)
	repo := NewRepository(conn)

	counter, err := repo.GetCounter(context.Background(), "bare")
	require.NoError(t, err)
	assert.Empty(t, counter.Items)
	assert.Empty(t, counter.Taxes)
}
