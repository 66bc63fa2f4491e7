// Package format provides currency string formatting.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency returns a currency string with a pound sign and thousands separators (e.g., "-£1,234.56").
func Currency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	formatted := formatPositiveCurrency(d.Abs())
	if d.IsNegative() {
		return "-£" + formatted
	}
	return "£" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + formatPositiveCurrency(d.Abs())
}

func formatPositiveCurrency(d decimal.Decimal) string {
	formatted := d.StringFixed(2)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
