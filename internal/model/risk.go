package model

// RiskLevel is the coarse market-wide posture for one evaluation cycle.
type RiskLevel string

const (
	RiskGood RiskLevel = "good"
	RiskMeh  RiskLevel = "meh"
	RiskBad  RiskLevel = "bad"
)

// InvestorFlow holds net buy/sell value (KRW) by investor category.
// Fields may be NaN when a category could not be parsed.
type InvestorFlow struct {
	Foreign       float64
	Institutional float64
}

// MarketPulse carries the index returns (percent) and optional aggregate flow
// that feed the risk classifier. Missing returns are NaN and never trigger.
type MarketPulse struct {
	Nasdaq     float64
	SP500      float64
	Domestic   float64 // broad domestic benchmark (KOSPI)
	Growth     float64 // secondary/growth index (KOSDAQ)
	Volatility float64 // volatility index (VIX)
	Flow       *InvestorFlow
}

// RiskAssessment is the classifier output: the level plus the individual hit
// flags that produced it.
type RiskAssessment struct {
	Level           RiskLevel
	Hits            int
	DomesticDown    bool
	GrowthDown      bool
	VolatilityUp    bool
	FlowBothSelling bool
}
