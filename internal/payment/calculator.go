// Package payment tracks the tendered amount against the current gross total.
package payment

import (
	"sync"

	"github.com/iamshihab2020/omnicore-pos/internal/domain"
)

// Presets are the fixed cash denomination shortcuts on the payment pad.
var Presets = []int64{200, 500, 1000, 2000}

// Calculator keeps the tendered amount and the derived change for the open
// order. Whenever the gross total moves, the tendered amount snaps back to
// exact payment; undercounting is allowed and simply yields zero change.
type Calculator struct {
	mu       sync.Mutex
	gross    domain.Decimal
	tendered domain.Decimal
	change   domain.Decimal
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// SetGrossTotal updates the gross total the calculator tracks. A changed
// total resets tendered to the new total and change to zero (the default
// assumption is exact payment). An unchanged total leaves the operator's
// entered amount alone.
func (c *Calculator) SetGrossTotal(gross domain.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gross.Equal(gross.Decimal) {
		return
	}
	c.gross = gross
	c.tendered = gross
	c.change = domain.Decimal{}
}

// SetTendered records the amount handed over. Negative input is coerced to
// zero. Change is floored at zero: tendered below the total is not blocked.
func (c *Calculator) SetTendered(amount domain.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if amount.IsNegative() {
		amount = domain.Decimal{}
	}
	c.tendered = amount
	c.change = c.changeLocked()
}

// TenderExact sets the tendered amount to the current gross total.
func (c *Calculator) TenderExact() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tendered = c.gross
	c.change = domain.Decimal{}
}

func (c *Calculator) changeLocked() domain.Decimal {
	if c.tendered.GreaterThanOrEqual(c.gross.Decimal) {
		return c.tendered.Sub(c.gross)
	}
	return domain.Decimal{}
}

// Snapshot returns the current tendered amount and change.
func (c *Calculator) Snapshot() (tendered, change domain.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tendered, c.change
}
