package strategy

import (
	"DailyBriefing/internal/calculator"
	"DailyBriefing/internal/model"
)

// Risk thresholds. The classifier is a plain additive hit counter, not a
// weighted score; changing a threshold or the combination rule changes
// behavior, it is not a tuning knob.
const (
	riskDomesticDrop    = -1.5 // domestic index 1-day return, percent
	riskGrowthDrop      = -1.8 // growth index 1-day return, percent
	riskVolatilitySpike = 6.0  // volatility index 1-day return, percent
)

// AssessRisk classifies the market-wide posture from index returns and
// optional aggregate flow. It always returns a value: every unavailable
// input counts as non-triggering.
func AssessRisk(pulse model.MarketPulse) model.RiskAssessment {
	a := model.RiskAssessment{}

	if calculator.Defined(pulse.Domestic) && pulse.Domestic <= riskDomesticDrop {
		a.DomesticDown = true
		a.Hits++
	}
	if calculator.Defined(pulse.Growth) && pulse.Growth <= riskGrowthDrop {
		a.GrowthDown = true
		a.Hits++
	}
	if calculator.Defined(pulse.Volatility) && pulse.Volatility >= riskVolatilitySpike {
		a.VolatilityUp = true
		a.Hits++
	}
	if f := pulse.Flow; f != nil {
		if calculator.Defined(f.Foreign) && calculator.Defined(f.Institutional) &&
			f.Foreign < 0 && f.Institutional < 0 {
			a.FlowBothSelling = true
			a.Hits++
		}
	}

	switch {
	case a.Hits >= 2:
		a.Level = model.RiskBad
	case a.Hits == 1:
		a.Level = model.RiskMeh
	default:
		a.Level = model.RiskGood
	}
	return a
}
