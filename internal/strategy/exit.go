package strategy

import (
	"DailyBriefing/internal/calculator"
	"DailyBriefing/internal/model"
)

// Exit flag thresholds (overheat detection).
const (
	exitRSIOverbought  = 70.0
	exitDist20Stretch  = 6.0  // percent above MA20
	exitChg5DStretch   = 12.0 // percent over 5 sessions
	exitNearHighFactor = 0.98 // within 2% of the 3-month high
)

// Escalation thresholds for the third stage.
const (
	escalateRSI    = 80.0
	escalateChg5D  = 15.0
	escalateDist20 = 9.0
)

// EvaluateExit derives the staged profit-taking recommendation for one
// snapshot. Stateless: every cycle recomputes from scratch, nothing carries
// over. NaN fields never raise a flag.
func EvaluateExit(snap *model.TechnicalSnapshot) model.ExitSignal {
	flags := model.ExitFlagSet{}
	if snap == nil {
		return model.ExitSignal{Stage: model.StageNone, Flags: flags}
	}

	if calculator.Defined(snap.RSI14) && snap.RSI14 >= exitRSIOverbought {
		flags[model.FlagRSIOverbought] = true
	}
	if calculator.Defined(snap.Dist20) && snap.Dist20 >= exitDist20Stretch {
		flags[model.FlagAboveMA20] = true
	}
	if calculator.Defined(snap.Chg5D) && snap.Chg5D >= exitChg5DStretch {
		flags[model.FlagMomentum5D] = true
	}
	if calculator.Defined(snap.High3M) && calculator.Defined(snap.Close) &&
		snap.High3M != 0 && snap.Close >= snap.High3M*exitNearHighFactor {
		flags[model.FlagNear3MonthHigh] = true
	}

	n := flags.Count()
	stage := model.StageNone
	if n >= 2 {
		stage = model.StageFirst
	}
	if n >= 3 {
		stage = model.StageSecond
		if overheatEscalation(snap, flags) {
			stage = model.StageThird
		}
	}
	return model.ExitSignal{Stage: stage, Flags: flags}
}

// overheatEscalation is the extra condition, on top of flag cardinality,
// required for the most aggressive stage.
func overheatEscalation(snap *model.TechnicalSnapshot, flags model.ExitFlagSet) bool {
	if calculator.Defined(snap.RSI14) && snap.RSI14 >= escalateRSI {
		return true
	}
	if calculator.Defined(snap.Chg5D) && snap.Chg5D >= escalateChg5D {
		return true
	}
	return flags.Has(model.FlagNear3MonthHigh) &&
		calculator.Defined(snap.Dist20) && snap.Dist20 >= escalateDist20
}
