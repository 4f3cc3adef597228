package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamshihab2020/omnicore-pos/internal/domain"
)

func line(name, price string, qty int) domain.CartLine {
	return domain.CartLine{
		Product: domain.Product{
			ID:    name,
			Name:  name,
			Price: domain.ParseDecimal(price),
		},
		Quantity: qty,
	}
}

func tax(name, rate string, active bool) domain.TaxRate {
	return domain.TaxRate{
		Name:     name,
		Rate:     domain.ParseDecimal(rate),
		IsActive: active,
	}
}

func TestComputeTotalsSingleTax(t *testing.T) {
	lines := []domain.CartLine{line("Burger", "220", 2)}
	taxes := []domain.TaxRate{tax("VAT", "5", true)}

	totals := ComputeTotals(lines, taxes)

	assert.Equal(t, "440", totals.Subtotal.String())
	require.Len(t, totals.TaxLines, 1)
	assert.Equal(t, "22", totals.TaxLines[0].Amount.String())
	assert.Equal(t, "462", totals.GrossTotal.String())
}

func TestComputeTotalsFractionalPrices(t *testing.T) {
	lines := []domain.CartLine{line("Juice", "150.50", 3)}

	totals := ComputeTotals(lines, nil)

	assert.Equal(t, "451.5", totals.Subtotal.String())
	assert.Empty(t, totals.TaxLines)
	assert.Equal(t, "451.5", totals.GrossTotal.String())
}

func TestComputeTotalsAdditiveNotCompounded(t *testing.T) {
	lines := []domain.CartLine{line("Set Menu", "100", 1)}
	taxes := []domain.TaxRate{
		tax("VAT", "5", true),
		tax("SD", "2.5", true),
	}

	totals := ComputeTotals(lines, taxes)

	require.Len(t, totals.TaxLines, 2)
	assert.Equal(t, "5", totals.TaxLines[0].Amount.String())
	assert.Equal(t, "2.5", totals.TaxLines[1].Amount.String())
	// 100 + 5 + 2.5, not 100 * 1.05 * 1.025.
	assert.Equal(t, "107.5", totals.GrossTotal.String())
	assert.Equal(t, "7.5", totals.TaxTotal().String())
}

func TestComputeTotalsBreakdownOrder(t *testing.T) {
	lines := []domain.CartLine{line("Platter", "100", 1)}
	taxes := []domain.TaxRate{
		tax("Service Charge", "10", true),
		tax("VAT", "5", true),
	}

	totals := ComputeTotals(lines, taxes)

	require.Len(t, totals.TaxLines, 2)
	assert.Equal(t, "Service Charge", totals.TaxLines[0].Name)
	assert.Equal(t, "VAT", totals.TaxLines[1].Name)
}

func TestComputeTotalsSkipsInactiveTaxes(t *testing.T) {
	lines := []domain.CartLine{line("Pizza", "400", 1)}
	taxes := []domain.TaxRate{
		tax("VAT", "5", true),
		tax("Old Levy", "3", false),
	}

	totals := ComputeTotals(lines, taxes)

	require.Len(t, totals.TaxLines, 1)
	assert.Equal(t, "VAT", totals.TaxLines[0].Name)
	assert.Equal(t, "420", totals.GrossTotal.String())
}

func TestComputeTotalsUnparsableRate(t *testing.T) {
	lines := []domain.CartLine{line("Pizza", "400", 1)}
	taxes := []domain.TaxRate{tax("VAT", "n/a", true)}

	totals := ComputeTotals(lines, taxes)

	// The broken rate was coerced to zero upstream but still appears.
	require.Len(t, totals.TaxLines, 1)
	assert.True(t, totals.TaxLines[0].Amount.IsZero())
	assert.Equal(t, "400", totals.GrossTotal.String())
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, []domain.TaxRate{tax("VAT", "5", true)})

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.GrossTotal.IsZero())
	require.Len(t, totals.TaxLines, 1)
	assert.True(t, totals.TaxLines[0].Amount.IsZero())
}
