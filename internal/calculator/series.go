package calculator

import (
	"math"
	"strconv"
	"strings"
)

// The engine represents "unavailable" as IEEE NaN. Every threshold comparison
// must go through Defined first; a NaN can never satisfy an ordered compare,
// so an unavailable value never triggers a signal by accident.

// Undefined returns the not-available sentinel.
func Undefined() float64 { return math.NaN() }

// Defined reports whether v carries a real value.
func Defined(v float64) bool { return !math.IsNaN(v) }

// ParseFloat coerces a string to float64, returning the sentinel on failure.
// Thousands separators are tolerated.
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return Undefined()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Undefined()
	}
	return v
}

// ChangePercent computes (curr/prev - 1) * 100. Undefined when prev is zero
// or either input is unavailable.
func ChangePercent(curr, prev float64) float64 {
	if !Defined(curr) || !Defined(prev) || prev == 0 {
		return Undefined()
	}
	return (curr/prev - 1.0) * 100.0
}

// Clamp bounds v to [lo, hi]. NaN passes through unchanged.
func Clamp(v, lo, hi float64) float64 {
	if !Defined(v) {
		return v
	}
	return math.Min(math.Max(v, lo), hi)
}
