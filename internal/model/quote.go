package model

// CoreQuote is the light view of a tracked domestic holding: last close,
// 1-day change and valuation, without the full technical snapshot.
type CoreQuote struct {
	Code         string
	Name         string
	Close        float64
	Chg1D        float64
	Fundamentals *Fundamentals
}
