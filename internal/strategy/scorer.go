package strategy

import (
	"sort"

	"DailyBriefing/internal/calculator"
	"DailyBriefing/internal/model"
)

// Candidate gates and score weights.
const (
	minCandidateDepth = 10

	excludeDist20   = 12.0 // overheated vs. trend
	excludeMomentum = 18.0 // overheated 5-session momentum

	dist20ClampAbs = 6.0
	dist20Weight   = 0.7

	perHighBand    = 60.0
	perHighPenalty = -5.0
	perMidBand     = 35.0
	perMidPenalty  = -2.0

	flowPenalty = -3.5

	guideStopFactor    = 0.96
	guideTarget1Factor = 1.10
	guideTarget2Factor = 1.18
)

// DefaultPickLimit is how many candidates a normal cycle recommends.
// A meh market cuts this down; a bad market recommends nothing.
const (
	DefaultPickLimit = 3
	mehPickLimit     = 2
)

// ScoreCandidate runs the per-candidate pipeline: snapshot computation, hard
// exclusions, flow penalty, composite score. Returns nil when the candidate
// is excluded or its data is unusable; a bad candidate never aborts the rest
// of the universe.
func ScoreCandidate(in model.CandidateInput) *model.ScoredCandidate {
	series := in.Series
	if len(series) < minCandidateDepth || series.Validate() != nil {
		return nil
	}

	closes := series.Closes()
	n := len(closes)
	last := closes[n-1]

	// Shorter histories fall back to an average over what exists.
	maWindow := ma20Window
	if n < maWindow {
		maWindow = n
	}
	ma20 := calculator.MovingAverage(closes, maWindow)

	dist20 := calculator.Undefined()
	if calculator.Defined(ma20) && ma20 != 0 {
		dist20 = calculator.ChangePercent(last, ma20)
	}

	mom5 := calculator.Undefined()
	if n >= chg5DLookback+1 {
		mom5 = calculator.ChangePercent(last, closes[n-1-chg5DLookback])
	}

	// Hard exclusions: dropped entirely, not penalized.
	if calculator.Defined(dist20) && dist20 >= excludeDist20 {
		return nil
	}
	if calculator.Defined(mom5) && mom5 >= excludeMomentum {
		return nil
	}
	if in.Fundamentals == nil {
		return nil
	}
	eps := in.Fundamentals.EPS
	per := in.Fundamentals.PER
	if !calculator.Defined(eps) || eps <= 0 {
		return nil
	}

	penalty := 0.0
	if f := in.Flow; f != nil {
		if calculator.Defined(f.Foreign) && calculator.Defined(f.Institutional) &&
			f.Foreign < 0 && f.Institutional < 0 {
			penalty = flowPenalty
		}
	}

	score := 0.0
	if calculator.Defined(mom5) {
		score += mom5
	}
	if calculator.Defined(dist20) {
		score += calculator.Clamp(dist20, -dist20ClampAbs, dist20ClampAbs) * dist20Weight
	}
	if calculator.Defined(per) {
		if per >= perHighBand {
			score += perHighPenalty
		} else if per >= perMidBand {
			score += perMidPenalty
		}
	}
	score += penalty

	return &model.ScoredCandidate{
		ID:          in.ID,
		Close:       last,
		Momentum5:   mom5,
		Dist20:      dist20,
		MA20:        ma20,
		EPS:         eps,
		PER:         per,
		FlowPenalty: penalty,
		Score:       score,
		Flow:        in.Flow,
		Guide:       buildGuide(last, ma20),
	}
}

// buildGuide derives the illustrative entry/risk/take-profit bands for a
// selected candidate. Nil when the band cannot be anchored.
func buildGuide(last, ma20 float64) *model.TradeGuide {
	if !calculator.Defined(last) || !calculator.Defined(ma20) || ma20 == 0 {
		return nil
	}
	return &model.TradeGuide{
		EntryLow:  ma20 * entryBandLow,
		EntryHigh: ma20 * entryBandHigh,
		Stop:      ma20 * guideStopFactor,
		Target1:   last * guideTarget1Factor,
		Target2:   last * guideTarget2Factor,
	}
}

// RankCandidates scores the universe and returns the top picks for the given
// risk level. Bad risk skips selection entirely. Sorting is score descending
// with ID ascending as the tie-break, so reruns over the same inputs produce
// the identical list regardless of input order.
func RankCandidates(universe []model.CandidateInput, level model.RiskLevel, limit int) []model.ScoredCandidate {
	if level == model.RiskBad {
		return nil
	}
	if limit <= 0 {
		limit = DefaultPickLimit
	}
	if level == model.RiskMeh && limit > mehPickLimit {
		limit = mehPickLimit
	}

	scored := make([]model.ScoredCandidate, 0, len(universe))
	for _, in := range universe {
		if c := ScoreCandidate(in); c != nil {
			scored = append(scored, *c)
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ID < scored[j].ID
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
