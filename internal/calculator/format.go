package calculator

import (
	"math"
	"strconv"
)

// CurrencySymbol prefixes every displayed amount.
const CurrencySymbol = "₹"

// Round2 rounds v to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount renders v for display, e.g. "₹360.00".
// Rounding is display-only; shares rounded independently may not sum to
// the subtotal.
func FormatAmount(v float64) string {
	return CurrencySymbol + strconv.FormatFloat(Round2(v), 'f', 2, 64)
}
