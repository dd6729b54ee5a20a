// Package report holds the pure formatting and aggregation helpers shared by
// table rendering, exports and the dashboard.
package report

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatComma formats a value with en-US thousands grouping. The fractional
// part carries between min(2, digits) and digits digits; halves round away
// from zero. Non-finite input is coerced to 0.
func FormatComma(value float64, digits int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	if digits < 0 {
		digits = 0
	}
	minDigits := digits
	if minDigits > 2 {
		minDigits = 2
	}

	// Round with decimal first: the displayed value must not depend on the
	// formatter's rounding mode.
	rounded := decimal.NewFromFloat(value).Round(int32(digits)).InexactFloat64()

	return printer.Sprintf("%v", number.Decimal(rounded,
		number.MinFractionDigits(minDigits),
		number.MaxFractionDigits(digits),
	))
}

// FormatMinus formats the absolute value via FormatComma and wraps negative
// inputs in parentheses (accounting notation) instead of a minus sign.
func FormatMinus(value float64, digits int) string {
	formatted := FormatComma(math.Abs(value), digits)
	if value < 0 {
		return "(" + formatted + ")"
	}
	return formatted
}

// Sum adds a list of decimals. An empty or nil list sums to zero.
func Sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// SumBy sums the value extracted from each element. An empty or nil list sums
// to zero.
func SumBy[T any](items []T, value func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(value(item))
	}
	return total
}

// PercentageChange returns the percent delta between two values, formatted
// via FormatComma with two fraction digits. A zero previous value yields
// "100.00" when the current value is positive and "0.00" otherwise, so the
// dashboard never divides by zero.
func PercentageChange(previous, current decimal.Decimal) string {
	if previous.IsZero() {
		if current.GreaterThan(decimal.Zero) {
			return FormatComma(100, 2)
		}
		return FormatComma(0, 2)
	}
	change := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
	return FormatComma(change.InexactFloat64(), 2)
}
