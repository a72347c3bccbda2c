package calculator

// RollingMax returns the maximum of the last window values, or of the whole
// slice when fewer are available. Undefined only for an empty slice.
func RollingMax(values []float64, window int) float64 {
	if len(values) == 0 || window <= 0 {
		return Undefined()
	}
	start := len(values) - window
	if start < 0 {
		start = 0
	}
	max := values[start]
	for i := start + 1; i < len(values); i++ {
		if values[i] > max {
			max = values[i]
		}
	}
	return max
}
