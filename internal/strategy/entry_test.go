package strategy

import (
	"testing"

	"DailyBriefing/internal/calculator"
	"DailyBriefing/internal/model"
)

func TestPlanEntry_BadMarketDefers(t *testing.T) {
	// Even a price dead inside the band defers when the market is bad.
	advice := PlanEntry(100, 100, model.RiskBad)
	if advice.Verdict != model.EntryDeferRisk {
		t.Errorf("expected risk deferral, got %s", advice.Verdict)
	}
	if calculator.Defined(advice.Low) || calculator.Defined(advice.High) {
		t.Errorf("expected undefined band on deferral, got [%v, %v]", advice.Low, advice.High)
	}
}

func TestPlanEntry_MissingData(t *testing.T) {
	nan := calculator.Undefined()
	for _, tt := range []struct {
		close, ma20 float64
	}{
		{nan, 100},
		{100, nan},
		{100, 0},
	} {
		advice := PlanEntry(tt.close, tt.ma20, model.RiskGood)
		if advice.Verdict != model.EntryDeferData {
			t.Errorf("close=%v ma20=%v: expected data deferral, got %s", tt.close, tt.ma20, advice.Verdict)
		}
	}
}

func TestPlanEntry_Banding(t *testing.T) {
	tests := []struct {
		close   float64
		verdict model.EntryVerdict
	}{
		{103, model.EntryAboveBand},  // above 102
		{97, model.EntryBelowBand},   // below 98
		{100, model.EntryInsideBand}, // inside
		{102, model.EntryInsideBand}, // boundary counts as inside
		{98, model.EntryInsideBand},  // boundary counts as inside
	}
	for _, tt := range tests {
		advice := PlanEntry(tt.close, 100, model.RiskGood)
		if advice.Verdict != tt.verdict {
			t.Errorf("close=%v: expected %s, got %s", tt.close, tt.verdict, advice.Verdict)
		}
		if advice.Low != 98 || advice.High != 102 {
			t.Errorf("close=%v: expected band [98, 102], got [%v, %v]", tt.close, advice.Low, advice.High)
		}
	}
}

func TestPlanEntry_MehStillPlans(t *testing.T) {
	advice := PlanEntry(100, 100, model.RiskMeh)
	if advice.Verdict != model.EntryInsideBand {
		t.Errorf("meh market should still plan entries, got %s", advice.Verdict)
	}
}
