package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iamshihab2020/omnicore-pos/internal/domain"
)

func TestSetGrossTotalResetsTender(t *testing.T) {
	c := NewCalculator()
	c.SetGrossTotal(domain.DecimalFromInt(462))

	tendered, change := c.Snapshot()
	assert.Equal(t, "462", tendered.String())
	assert.True(t, change.IsZero())
}

func TestSetGrossTotalUnchangedKeepsTender(t *testing.T) {
	c := NewCalculator()
	c.SetGrossTotal(domain.DecimalFromInt(462))
	c.SetTendered(domain.DecimalFromInt(500))

	// Recomputing the same total must not clobber the operator's entry.
	c.SetGrossTotal(domain.DecimalFromInt(462))

	tendered, change := c.Snapshot()
	assert.Equal(t, "500", tendered.String())
	assert.Equal(t, "38", change.String())
}

func TestSetTenderedChange(t *testing.T) {
	c := NewCalculator()
	c.SetGrossTotal(domain.DecimalFromInt(462))

	c.SetTendered(domain.DecimalFromInt(500))
	_, change := c.Snapshot()
	assert.Equal(t, "38", change.String())

	c.SetTendered(domain.DecimalFromInt(1000))
	_, change = c.Snapshot()
	assert.Equal(t, "538", change.String())
}

func TestSetTenderedBelowTotalFlooredAtZero(t *testing.T) {
	c := NewCalculator()
	c.SetGrossTotal(domain.DecimalFromInt(462))

	c.SetTendered(domain.DecimalFromInt(200))

	tendered, change := c.Snapshot()
	assert.Equal(t, "200", tendered.String())
	assert.True(t, change.IsZero())
}

func TestSetTenderedNegativeCoercedToZero(t *testing.T) {
	c := NewCalculator()
	c.SetGrossTotal(domain.DecimalFromInt(100))

	c.SetTendered(domain.DecimalFromInt(-50))

	tendered, change := c.Snapshot()
	assert.True(t, tendered.IsZero())
	assert.True(t, change.IsZero())
}

func TestTenderExact(t *testing.T) {
	c := NewCalculator()
	c.SetGrossTotal(domain.DecimalFromInt(462))
	c.SetTendered(domain.DecimalFromInt(1000))

	c.TenderExact()

	tendered, change := c.Snapshot()
	assert.Equal(t, "462", tendered.String())
	assert.True(t, change.IsZero())
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []int64{200, 500, 1000, 2000}, Presets)
}
