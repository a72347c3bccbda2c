package model

// Fundamentals holds valuation figures for one ticker. Fields may be NaN.
type Fundamentals struct {
	EPS float64
	PER float64
	PBR float64
}

// CandidateInput is one universe member with its resolved data, ready for
// scoring. Fundamentals and Flow are nil when the lookup failed.
type CandidateInput struct {
	ID           string
	Series       PriceSeries
	Fundamentals *Fundamentals
	Flow         *InvestorFlow
}

// TradeGuide holds the illustrative entry/risk/take-profit bands attached to
// a selected candidate.
type TradeGuide struct {
	EntryLow  float64 // ma20 * 0.98
	EntryHigh float64 // ma20 * 1.02
	Stop      float64 // ma20 * 0.96
	Target1   float64 // close * 1.10
	Target2   float64 // close * 1.18
}

// ScoredCandidate is a surviving, scored universe member. Score is derived
// from the other fields and recomputed every cycle.
type ScoredCandidate struct {
	ID          string
	Name        string
	Close       float64
	Momentum5   float64
	Dist20      float64
	MA20        float64
	EPS         float64
	PER         float64
	FlowPenalty float64
	Score       float64
	Flow        *InvestorFlow
	Guide       *TradeGuide
}
