package recorder

import "DailyBriefing/internal/model"

// BriefingRecord captures one evaluation cycle's market-wide result.
type BriefingRecord struct {
	Date       string // KRX business day, YYYYMMDD
	Pulse      model.MarketPulse
	Assessment model.RiskAssessment
	USDKRW     float64
}

// ExitSignalRecord captures one tracked instrument's evaluation.
type ExitSignalRecord struct {
	Date     string
	Symbol   string
	Snapshot *model.TechnicalSnapshot
	Signal   model.ExitSignal
	Entry    model.EntryAdvice
}

// Recorder persists evaluation history for later analysis. It is an
// append-only log, not engine state; every cycle recomputes from scratch.
type Recorder interface {
	RecordBriefing(rec *BriefingRecord) error
	RecordExitSignal(rec *ExitSignalRecord) error
	RecordPicks(date string, picks []model.ScoredCandidate) error
	Close() error
}
