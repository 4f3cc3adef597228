package domain

import (
	"bytes"
	"log"

	"github.com/shopspring/decimal"
)

// Decimal wraps shopspring decimal with tolerant JSON decoding. The backend
// serializes prices and tax rates either as numbers or as numeric strings
// depending on the endpoint, and a single malformed value must not fail the
// whole payload: garbage is coerced to zero with a logged diagnostic.
type Decimal struct {
	decimal.Decimal
}

func NewDecimal(d decimal.Decimal) Decimal {
	return Decimal{d}
}

func DecimalFromFloat(f float64) Decimal {
	return Decimal{decimal.NewFromFloat(f)}
}

func DecimalFromInt(i int64) Decimal {
	return Decimal{decimal.NewFromInt(i)}
}

// ParseDecimal parses a numeric string, coercing unparsable input to zero.
func ParseDecimal(s string) Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		log.Printf("invalid decimal value %q, coercing to 0: %v", s, err)
		return Decimal{}
	}
	return Decimal{d}
}

func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		d.Decimal = decimal.Zero
		return nil
	}

	parsed, err := decimal.NewFromString(string(data))
	if err != nil {
		log.Printf("invalid decimal value %q, coercing to 0: %v", data, err)
		d.Decimal = decimal.Zero
		return nil
	}

	d.Decimal = parsed
	return nil
}

// Round2 rounds to two decimal places, half away from zero.
func (d Decimal) Round2() Decimal {
	return Decimal{d.Round(2)}
}

func (d Decimal) Add(other Decimal) Decimal {
	return Decimal{d.Decimal.Add(other.Decimal)}
}

func (d Decimal) Sub(other Decimal) Decimal {
	return Decimal{d.Decimal.Sub(other.Decimal)}
}

// MulInt multiplies by an integer factor (line quantity).
func (d Decimal) MulInt(n int) Decimal {
	return Decimal{d.Decimal.Mul(decimal.NewFromInt(int64(n)))}
}

// Percent returns d percent of base, e.g. rate.Percent(subtotal).
func (d Decimal) Percent(base Decimal) Decimal {
	return Decimal{base.Decimal.Mul(d.Decimal).Div(decimal.NewFromInt(100))}
}
