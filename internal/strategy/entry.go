package strategy

import (
	"DailyBriefing/internal/calculator"
	"DailyBriefing/internal/model"
)

// Entry band around MA20. The same ±2% rule is used for tracked instruments
// and for candidate guide bands.
const (
	entryBandLow  = 0.98
	entryBandHigh = 1.02
)

// PlanEntry proposes a staged-entry price band, or defers. Risk level bad
// defers regardless of price; missing data defers with its own verdict.
func PlanEntry(last, ma20 float64, level model.RiskLevel) model.EntryAdvice {
	if level == model.RiskBad {
		return model.EntryAdvice{Verdict: model.EntryDeferRisk, Low: calculator.Undefined(), High: calculator.Undefined()}
	}
	if !calculator.Defined(last) || !calculator.Defined(ma20) || ma20 == 0 {
		return model.EntryAdvice{Verdict: model.EntryDeferData, Low: calculator.Undefined(), High: calculator.Undefined()}
	}

	low := ma20 * entryBandLow
	high := ma20 * entryBandHigh
	verdict := model.EntryInsideBand
	if last > high {
		verdict = model.EntryAboveBand
	} else if last < low {
		verdict = model.EntryBelowBand
	}
	return model.EntryAdvice{Verdict: verdict, Low: low, High: high}
}
