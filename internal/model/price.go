package model

import (
	"errors"
	"time"
)

// PricePoint is one daily close for an instrument.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries holds daily closes ordered by date ascending.
type PriceSeries []PricePoint

// ErrInvalidSeries is returned when dates are not strictly increasing.
var ErrInvalidSeries = errors.New("price series dates must be strictly increasing")

// Validate checks date ordering. Duplicate or out-of-order dates are rejected.
func (s PriceSeries) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i].Date.After(s[i-1].Date) {
			return ErrInvalidSeries
		}
	}
	return nil
}

// Closes extracts the close values in series order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.Close
	}
	return closes
}

// Tail returns the last n points, or the whole series if shorter.
func (s PriceSeries) Tail(n int) PriceSeries {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
