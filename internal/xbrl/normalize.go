package xbrl

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeNumber converts a locale-formatted numeric literal into an exact
// decimal value. Filings use the European convention: "." groups thousands
// and "," marks the decimal point, so "1.234.567,89" becomes 1234567.89.
// Currency symbols and other stray characters are discarded.
//
// Empty, dash-only, or unparsable text returns nil: malformed numeric text
// is soft-missing data, never an error. The function is pure.
func NormalizeNumber(text string) *decimal.Decimal {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	text = strings.ReplaceAll(text, ".", "")
	text = strings.ReplaceAll(text, ",", ".")

	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" || cleaned == "-" {
		return nil
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	return &value
}
