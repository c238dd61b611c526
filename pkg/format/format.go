// Package format renders portfolio numbers for display.
package format

import (
	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1000)
	million  = decimal.NewFromInt(1000000)
)

// Percentage renders a percentage with one decimal place and a trailing "%".
func Percentage(value float64) string {
	return PercentagePrecision(value, 1)
}

// PercentagePrecision renders a percentage with the given number of decimal places.
func PercentagePrecision(value float64, decimals int32) string {
	return decimal.NewFromFloat(value).StringFixed(decimals) + "%"
}

// Value renders a currency amount with a dollar sign, abbreviating values of
// one thousand or more with a "K" suffix and one million or more with an "M"
// suffix, always keeping two decimal places before the suffix.
func Value(value float64) string {
	d := decimal.NewFromFloat(value)
	switch {
	case d.GreaterThanOrEqual(million):
		return "$" + d.Div(million).StringFixed(2) + "M"
	case d.GreaterThanOrEqual(thousand):
		return "$" + d.Div(thousand).StringFixed(2) + "K"
	default:
		return "$" + d.StringFixed(2)
	}
}
