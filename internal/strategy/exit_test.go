package strategy

import (
	"testing"

	"DailyBriefing/internal/calculator"
	"DailyBriefing/internal/model"
)

func TestEvaluateExit_ThirdStageScenario(t *testing.T) {
	// Three flags (RSI, dist20=10%, 5D) plus near-high escalation with
	// dist20 >= 9 pushes to the third stage.
	snap := &model.TechnicalSnapshot{
		Close:  110,
		MA20:   100,
		Dist20: 10,
		RSI14:  75,
		Chg5D:  13,
		High3M: 112,
	}
	sig := EvaluateExit(snap)
	if sig.Stage != model.StageThird {
		t.Errorf("expected third stage, got %s", sig.Stage)
	}
	if n := sig.Flags.Count(); n != 4 {
		t.Errorf("expected 4 flags (incl. near-high 110 >= 109.76), got %d: %v", n, sig.Flags.Active())
	}
}

func TestEvaluateExit_QuietScenario(t *testing.T) {
	snap := &model.TechnicalSnapshot{
		Close:  100,
		MA20:   100,
		Dist20: 0,
		RSI14:  50,
		Chg5D:  5,
		High3M: 110,
	}
	sig := EvaluateExit(snap)
	if sig.Stage != model.StageNone {
		t.Errorf("expected no stage, got %s", sig.Stage)
	}
	if sig.Flags.Count() != 0 {
		t.Errorf("expected no flags, got %v", sig.Flags.Active())
	}
}

func TestEvaluateExit_StageLadder(t *testing.T) {
	tests := []struct {
		name  string
		snap  model.TechnicalSnapshot
		stage model.ExitStage
	}{
		{"one flag holds", model.TechnicalSnapshot{Close: 100, Dist20: 7, RSI14: 50, Chg5D: 2, High3M: 120}, model.StageNone},
		{"two flags first", model.TechnicalSnapshot{Close: 100, Dist20: 7, RSI14: 71, Chg5D: 2, High3M: 120}, model.StageFirst},
		{"three flags second", model.TechnicalSnapshot{Close: 100, Dist20: 7, RSI14: 71, Chg5D: 12.5, High3M: 120}, model.StageSecond},
		{"three flags rsi80 third", model.TechnicalSnapshot{Close: 100, Dist20: 7, RSI14: 80, Chg5D: 12.5, High3M: 120}, model.StageThird},
		{"three flags chg15 third", model.TechnicalSnapshot{Close: 100, Dist20: 7, RSI14: 71, Chg5D: 15, High3M: 120}, model.StageThird},
	}
	for _, tt := range tests {
		sig := EvaluateExit(&tt.snap)
		if sig.Stage != tt.stage {
			t.Errorf("%s: expected %s, got %s (flags=%v)", tt.name, tt.stage, sig.Stage, sig.Flags.Active())
		}
	}
}

func TestEvaluateExit_MonotoneInFlags(t *testing.T) {
	// Adding one more triggering condition never lowers the stage.
	base := model.TechnicalSnapshot{Close: 100, Dist20: 7, RSI14: 50, Chg5D: 2, High3M: 200}
	prev := EvaluateExit(&base).Stage

	withRSI := base
	withRSI.RSI14 = 71
	s := EvaluateExit(&withRSI).Stage
	if s < prev {
		t.Errorf("stage dropped after adding RSI flag: %s -> %s", prev, s)
	}
	prev = s

	with5D := withRSI
	with5D.Chg5D = 12
	s = EvaluateExit(&with5D).Stage
	if s < prev {
		t.Errorf("stage dropped after adding 5D flag: %s -> %s", prev, s)
	}
	prev = s

	withHigh := with5D
	withHigh.High3M = 100
	s = EvaluateExit(&withHigh).Stage
	if s < prev {
		t.Errorf("stage dropped after adding near-high flag: %s -> %s", prev, s)
	}
}

func TestEvaluateExit_UndefinedFields(t *testing.T) {
	nan := calculator.Undefined()
	snap := &model.TechnicalSnapshot{Close: 100, MA20: nan, Dist20: nan, RSI14: nan, Chg5D: nan, High3M: nan}
	sig := EvaluateExit(snap)
	if sig.Stage != model.StageNone || sig.Flags.Count() != 0 {
		t.Errorf("expected nothing to trigger on undefined fields, got %+v", sig)
	}

	// Nil snapshot is the unavailable sentinel: hold.
	sig = EvaluateExit(nil)
	if sig.Stage != model.StageNone {
		t.Errorf("expected none for nil snapshot, got %s", sig.Stage)
	}
}

func TestEvaluateExit_NearHighEscalationNeedsBoth(t *testing.T) {
	// Near-high set but dist20 just below 9: stays at second.
	snap := &model.TechnicalSnapshot{Close: 100, Dist20: 8.9, RSI14: 71, Chg5D: 12, High3M: 100}
	sig := EvaluateExit(snap)
	if sig.Stage != model.StageSecond {
		t.Errorf("expected second, got %s", sig.Stage)
	}
}
