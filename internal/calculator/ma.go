package calculator

// MovingAverage computes the simple moving average of the last window values.
// Undefined when window is not positive or fewer than window values exist.
func MovingAverage(values []float64, window int) float64 {
	if window <= 0 || len(values) < window {
		return Undefined()
	}
	sum := 0.0
	for i := len(values) - window; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(window)
}
