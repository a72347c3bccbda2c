package model

// EntryVerdict is the three-way banding outcome of the entry planner, plus
// the two deferral states.
type EntryVerdict string

const (
	EntryDeferRisk  EntryVerdict = "defer_risk"  // market risk bad, no new entries
	EntryDeferData  EntryVerdict = "defer_data"  // ma20/close unavailable
	EntryAboveBand  EntryVerdict = "above_band"  // wait for a pullback into the band
	EntryBelowBand  EntryVerdict = "below_band"  // average in slowly within the band
	EntryInsideBand EntryVerdict = "inside_band" // staged entry now
)

// EntryAdvice is the entry planner output. Low/High are the ±2% band around
// MA20 and are NaN for the deferral verdicts.
type EntryAdvice struct {
	Verdict EntryVerdict
	Low     float64
	High    float64
}
