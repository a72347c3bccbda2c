package model

// ExitFlag marks one overheat condition on a technical snapshot.
type ExitFlag string

const (
	FlagRSIOverbought  ExitFlag = "RSI>=70"
	FlagAboveMA20      ExitFlag = "MA20+6%"
	FlagMomentum5D     ExitFlag = "5D+12%"
	FlagNear3MonthHigh ExitFlag = "near 3M high"
)

// AllExitFlags lists the flags in canonical display order. Detection order is
// irrelevant; only membership matters.
var AllExitFlags = []ExitFlag{FlagRSIOverbought, FlagAboveMA20, FlagMomentum5D, FlagNear3MonthHigh}

// ExitFlagSet is the active subset of flags for one snapshot.
type ExitFlagSet map[ExitFlag]bool

func (s ExitFlagSet) Has(f ExitFlag) bool { return s[f] }

func (s ExitFlagSet) Count() int {
	n := 0
	for _, active := range s {
		if active {
			n++
		}
	}
	return n
}

// Active returns the set members in canonical order, for display.
func (s ExitFlagSet) Active() []ExitFlag {
	var out []ExitFlag
	for _, f := range AllExitFlags {
		if s[f] {
			out = append(out, f)
		}
	}
	return out
}

// ExitStage is the staged profit-taking recommendation.
// Total order: StageNone < StageFirst < StageSecond < StageThird.
type ExitStage int

const (
	StageNone ExitStage = iota
	StageFirst
	StageSecond
	StageThird
)

func (e ExitStage) String() string {
	switch e {
	case StageFirst:
		return "first"
	case StageSecond:
		return "second"
	case StageThird:
		return "third"
	default:
		return "none"
	}
}

// Action describes the recommended move for the stage.
func (e ExitStage) Action() string {
	switch e {
	case StageFirst:
		return "take first profits (30%)"
	case StageSecond:
		return "take second profits (+30%, 60% total)"
	case StageThird:
		return "take third profits (+20%, 80% total)"
	default:
		return "hold / wait"
	}
}

// ExitSignal is the exit engine output for one snapshot.
type ExitSignal struct {
	Stage ExitStage
	Flags ExitFlagSet
}
