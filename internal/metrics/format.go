package metrics

import (
	"math"
	"strconv"

	"github.com/naka-gawa/readme-stats/internal/domain"
)

// FormatNumber prints a counter. The short format abbreviates thousands and
// millions to one decimal ("1.2k", "3.4M"); the long format prints every digit.
// Negative values are shown as 0.
func FormatNumber(n int, format domain.NumberFormat) string {
	if n < 0 {
		n = 0
	}
	if format == domain.NumberFormatLong || n < 1000 {
		return strconv.Itoa(n)
	}
	k := math.Round(float64(n)/100) / 10
	if k < 1000 {
		return FormatFloat(k) + "k"
	}
	m := math.Round(float64(n)/100_000) / 10
	return FormatFloat(m) + "M"
}

// FormatFloat prints f with the fewest digits that round-trip, never in exponent form.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatFixed prints f with exactly decimals digits after the point.
func FormatFixed(f float64, decimals int) string {
	return strconv.FormatFloat(f, 'f', decimals, 64)
}
