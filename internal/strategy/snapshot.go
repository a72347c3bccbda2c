package strategy

import (
	"DailyBriefing/internal/calculator"
	"DailyBriefing/internal/model"
)

const (
	// minSnapshotDepth is the minimum history for a full snapshot; below it
	// the instrument is reported as unavailable rather than half-computed.
	minSnapshotDepth = 25

	ma20Window    = 20
	high3MWindow  = 63 // ~3 months of sessions
	chg5DLookback = 5
)

// BuildSnapshot turns a daily price history into a TechnicalSnapshot.
// Returns nil when the series is shorter than minSnapshotDepth or has broken
// date ordering; callers must treat nil as a first-class "unavailable" result.
// Individual fields may still be NaN when their window cannot be satisfied.
func BuildSnapshot(series model.PriceSeries) *model.TechnicalSnapshot {
	if len(series) < minSnapshotDepth {
		return nil
	}
	if err := series.Validate(); err != nil {
		return nil
	}

	closes := series.Closes()
	n := len(closes)
	last := closes[n-1]

	chg1d := calculator.ChangePercent(last, closes[n-2])

	chg5d := calculator.Undefined()
	if n >= chg5DLookback+1 {
		chg5d = calculator.ChangePercent(last, closes[n-1-chg5DLookback])
	}

	ma20 := calculator.MovingAverage(closes, ma20Window)
	dist20 := calculator.Undefined()
	if calculator.Defined(ma20) && ma20 != 0 {
		dist20 = calculator.ChangePercent(last, ma20)
	}

	return &model.TechnicalSnapshot{
		Close:  last,
		Chg1D:  chg1d,
		Chg5D:  chg5d,
		MA20:   ma20,
		Dist20: dist20,
		RSI14:  calculator.RSI(closes, calculator.DefaultRSIPeriod),
		High3M: calculator.RollingMax(closes, high3MWindow),
	}
}
