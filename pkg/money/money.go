// Package money formats decimal amounts for display and export.
package money

import "github.com/shopspring/decimal"

// Formatter renders amounts with a currency symbol for the admin screens,
// standing in for the storefront's own price formatter.
type Formatter struct {
	Symbol string
}

func (f Formatter) Format(amount decimal.Decimal) string {
	return f.Symbol + amount.StringFixed(2)
}

// Range renders "low – high", collapsing to a single amount when equal.
func (f Formatter) Range(low, high decimal.Decimal) string {
	if low.Equal(high) {
		return f.Format(low)
	}
	return f.Format(low) + " – " + f.Format(high)
}

// Fixed2 renders an amount with two decimals and a dot separator, the fixed
// form used in CSV exports regardless of locale.
func Fixed2(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// Percent renders a percentage with two decimals and a % suffix.
func Percent(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
