package model

// TechnicalSnapshot is the fixed-shape view of one instrument computed from
// its daily price history. Any field may be NaN when the underlying window is
// unavailable or a denominator is zero; NaN propagates and must never be
// compared as if it were a real value.
type TechnicalSnapshot struct {
	Close  float64
	Chg1D  float64 // 1-day change, percent
	Chg5D  float64 // 5-day change, percent
	MA20   float64
	Dist20 float64 // distance from MA20, percent
	RSI14  float64
	High3M float64 // rolling high over ~63 sessions
}
