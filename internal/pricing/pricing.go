// Package pricing derives order totals from cart lines and tax configuration.
package pricing

import (
	"github.com/iamshihab2020/omnicore-pos/internal/domain"
)

// ComputeTotals computes the subtotal, the per-tax breakdown and the gross
// total for the given lines and tax rates. Pure function: callers invoke it
// after every cart or tax mutation instead of keeping derived state around.
//
// Every active rate is applied to the subtotal additively, never compounded,
// in the order the rates were supplied. Inactive rates are skipped. A rate
// that failed numeric coercion upstream carries zero and still shows up in
// the breakdown with a 0.00 amount.
func ComputeTotals(lines []domain.CartLine, taxes []domain.TaxRate) domain.Totals {
	subtotal := domain.Decimal{}
	for _, line := range lines {
		subtotal = subtotal.Add(line.Total())
	}

	totals := domain.Totals{Subtotal: subtotal}

	taxSum := domain.Decimal{}
	for _, tax := range taxes {
		if !tax.IsActive {
			continue
		}
		amount := tax.Rate.Percent(subtotal).Round2()
		totals.TaxLines = append(totals.TaxLines, domain.TaxLine{
			Name:   tax.Name,
			Rate:   tax.Rate,
			Amount: amount,
		})
		taxSum = taxSum.Add(amount)
	}

	totals.GrossTotal = subtotal.Add(taxSum).Round2()
	return totals
}
