package recorder

import "DailyBriefing/internal/model"

// NoopRecorder discards every record. Used when the database is disabled
// or failed to open, so the briefing still goes out.
type NoopRecorder struct{}

// NewNoopRecorder creates a recorder that drops everything.
func NewNoopRecorder() NoopRecorder { return NoopRecorder{} }

func (NoopRecorder) RecordBriefing(*BriefingRecord) error              { return nil }
func (NoopRecorder) RecordExitSignal(*ExitSignalRecord) error          { return nil }
func (NoopRecorder) RecordPicks(string, []model.ScoredCandidate) error { return nil }
func (NoopRecorder) Close() error                                      { return nil }
