// Package receipt renders a fixed-width textual receipt for thermal printers.
package receipt

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iamshihab2020/omnicore-pos/internal/domain"
)

// Column widths of the thermal layout. The item row is
// qty(3) + " x " + name(20) + price(8) + total(10).
const (
	qtyWidth       = 3
	nameWidth      = 20
	priceWidth     = 8
	lineTotalWidth = 10
	labelWidth     = 23
	lineWidth      = qtyWidth + 3 + nameWidth + priceWidth + lineTotalWidth
)

const (
	fallbackName    = "Restaurant Name"
	fallbackAddress = "Address, City"
	fallbackPhone   = "Phone: 0123456789"

	thanksNotice = "Thank You for your order. Visit us again."
	poweredBy    = "Powered by OmniCore"
)

// Data is the snapshot a receipt is rendered from. The formatter does not
// reach into live state; the caller assembles everything up front.
type Data struct {
	Lines         []domain.CartLine
	Totals        domain.Totals
	Paid          *domain.Decimal // nil when no tendered amount was entered
	Change        domain.Decimal
	PaymentMethod domain.PaymentMethod
	OrderType     domain.OrderType
	CounterName   string
	InvoiceNo     string
	Timestamp     time.Time
	Restaurant    domain.RestaurantInfo
}

// Formatter renders receipts. The currency symbol is a literal prefix rune,
// not locale-driven, so columns stay aligned on the printer; padding counts
// runes to keep multi-byte symbols from skewing the layout.
type Formatter struct {
	CurrencySymbol string
}

func NewFormatter() *Formatter {
	return &Formatter{CurrencySymbol: "৳"}
}

// Render produces the complete receipt text. No side effects; invoking the
// platform print mechanism is the caller's job.
func (f *Formatter) Render(d Data) string {
	var b strings.Builder

	writeLine(&b, orDefault(d.Restaurant.Name, fallbackName))
	writeLine(&b, orDefault(d.Restaurant.Address, fallbackAddress))
	writeLine(&b, orDefault(d.Restaurant.Phone, fallbackPhone))
	writeRule(&b)

	date := "Date: " + d.Timestamp.Format("2006-01-02")
	clock := "Time: " + d.Timestamp.Format("15:04")
	writeLine(&b, date+padLeft(clock, lineWidth-utf8.RuneCountInString(date)))
	writeLine(&b, "Invoice No: "+d.InvoiceNo)
	writeRule(&b)

	writeLine(&b, padLeft("Qty", qtyWidth)+" x "+padRight("Item", nameWidth)+
		padLeft("Price", priceWidth)+padLeft("Total", lineTotalWidth))
	for _, line := range d.Lines {
		writeLine(&b, f.itemRow(line))
	}
	writeRule(&b)

	writeLine(&b, f.totalRow("Net Total:", d.Totals.Subtotal))
	writeRule(&b)

	if len(d.Totals.TaxLines) > 0 {
		for _, tax := range d.Totals.TaxLines {
			label := tax.Name + " - " + tax.Rate.String() + "%:"
			writeLine(&b, f.totalRow(label, tax.Amount))
		}
	} else {
		// An explicit zero line, never an omitted section.
		writeLine(&b, f.totalRow("VAT:", domain.Decimal{}))
	}
	writeRule(&b)

	writeLine(&b, f.totalRow("Gross Total:", d.Totals.GrossTotal))
	writeRule(&b)

	writeLine(&b, textRow("Order Type:", string(d.OrderType)))
	writeRule(&b)
	writeLine(&b, textRow("Payment Method:", string(d.PaymentMethod)))
	writeRule(&b)
	writeLine(&b, textRow("Counter:", orDefault(d.CounterName, "Default")))
	writeRule(&b)

	if d.Paid != nil {
		writeLine(&b, f.totalRow("Amount Paid:", *d.Paid))
		writeLine(&b, f.totalRow("Change:", d.Change))
		writeRule(&b)
	}

	writeLine(&b, "Notes:")
	writeLine(&b, thanksNotice)
	writeLine(&b, poweredBy)
	if d.Restaurant.Phone != "" {
		b.WriteString("Phone: " + d.Restaurant.Phone)
	} else {
		b.WriteString(fallbackPhone)
	}

	return b.String()
}

func (f *Formatter) itemRow(line domain.CartLine) string {
	return padLeft(strconv.Itoa(line.Quantity), qtyWidth) + " x " +
		padRight(truncate(line.Product.Name, nameWidth), nameWidth) +
		padLeft(f.money(line.Product.Price), priceWidth) +
		padLeft(f.money(line.Total()), lineTotalWidth)
}

func (f *Formatter) totalRow(label string, amount domain.Decimal) string {
	return padRight(label, labelWidth) + padLeft(f.money(amount), lineTotalWidth)
}

func textRow(label, value string) string {
	return padRight(label, labelWidth) + padLeft(value, lineTotalWidth)
}

func (f *Formatter) money(d domain.Decimal) string {
	return f.CurrencySymbol + d.StringFixed(2)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}

func padLeft(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

func padRight(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func writeLine(b *strings.Builder, s string) {
	b.WriteString(s)
	b.WriteByte('\n')
}

func writeRule(b *strings.Builder) {
	writeLine(b, strings.Repeat("-", lineWidth))
}
