// Package exporter renders fact sheets for presentation: currency and
// percentage formatting, CSV summaries, and Excel workbooks. The extraction
// core never formats values itself; everything locale-shaped lives here.
package exporter

import (
	"strings"

	"github.com/shopspring/decimal"
)

// notAvailable is the placeholder for missing values, as filings are
// presented to Italian readers ("non disponibile").
const notAvailable = "N/D"

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
)

// FormatCurrency renders a monetary value in the Italian convention:
// "€ 1.234.567,89". Nil renders as N/D.
func FormatCurrency(d *decimal.Decimal) string {
	if d == nil {
		return notAvailable
	}

	s := d.StringFixed(2)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	grouped := groupThousands(parts[0])

	var b strings.Builder
	b.WriteString("€ ")
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(grouped)
	b.WriteByte(',')
	b.WriteString(parts[1])
	return b.String()
}

// FormatCurrencyAbbrev renders a magnitude-abbreviated variant: values of a
// million or more as "€ 1,23M", thousands as "€ 12,5K", smaller values as
// the full currency string.
func FormatCurrencyAbbrev(d *decimal.Decimal) string {
	if d == nil {
		return notAvailable
	}

	abs := d.Abs()
	switch {
	case abs.GreaterThanOrEqual(million):
		return "€ " + italianDecimal(d.Div(million).StringFixed(2)) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return "€ " + italianDecimal(d.Div(thousand).StringFixed(1)) + "K"
	default:
		return FormatCurrency(d)
	}
}

// FormatPercent renders a percentage with two decimal places, e.g. "20.00%".
func FormatPercent(d *decimal.Decimal) string {
	if d == nil {
		return notAvailable
	}
	return d.StringFixed(2) + "%"
}

// FormatRatio renders a plain ratio with two decimal places.
func FormatRatio(d *decimal.Decimal) string {
	if d == nil {
		return notAvailable
	}
	return d.StringFixed(2)
}

// groupThousands inserts "." every three digits from the right.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func italianDecimal(s string) string {
	return strings.ReplaceAll(s, ".", ",")
}
