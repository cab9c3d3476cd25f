package predictive

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Round2 rounds to 2 decimal places. All monetary and percentage outputs
// pass through here so repeated runs over the same snapshot are bit-identical.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 limits x to [0, 1].
func Clamp01(x float64) float64 {
	return Clamp(x, 0, 1)
}

// FormatCurrency renders a dollar amount with thousands separators,
// e.g. -1234567.8 -> "-$1,234,567.80".
func FormatCurrency(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatFloat(Round2(amount), 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]

	var b strings.Builder
	n := len(intPart)
	for i, ch := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	if neg {
		return fmt.Sprintf("-$%s%s", b.String(), frac)
	}
	return fmt.Sprintf("$%s%s", b.String(), frac)
}
