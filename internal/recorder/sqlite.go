package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"DailyBriefing/internal/calculator"
	"DailyBriefing/internal/model"
)

// SQLiteRecorder persists evaluation history to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: log.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.logger.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS briefings (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			date          TEXT NOT NULL,
			risk_level    TEXT NOT NULL,
			risk_hits     INTEGER NOT NULL,
			hit_domestic  INTEGER NOT NULL,
			hit_growth    INTEGER NOT NULL,
			hit_vol       INTEGER NOT NULL,
			hit_flow      INTEGER NOT NULL,
			nasdaq_ret    REAL,
			sp500_ret     REAL,
			kospi_ret     REAL,
			kosdaq_ret    REAL,
			vix_ret       REAL,
			flow_foreign  REAL,
			flow_inst     REAL,
			usdkrw        REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_briefings_ts ON briefings(timestamp)`,

		`CREATE TABLE IF NOT EXISTS exit_signals (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			date       TEXT NOT NULL,
			symbol     TEXT NOT NULL,
			close      REAL,
			chg1d      REAL,
			chg5d      REAL,
			ma20       REAL,
			dist20     REAL,
			rsi14      REAL,
			high_3m    REAL,
			flag_count INTEGER NOT NULL,
			flags      TEXT,
			stage      TEXT NOT NULL,
			entry_verdict TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exit_ts ON exit_signals(timestamp)`,

		`CREATE TABLE IF NOT EXISTS candidate_picks (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			date         TEXT NOT NULL,
			rank         INTEGER NOT NULL,
			code         TEXT NOT NULL,
			close        REAL,
			momentum5    REAL,
			dist20       REAL,
			eps          REAL,
			per          REAL,
			flow_penalty REAL,
			score        REAL,
			entry_low    REAL,
			entry_high   REAL,
			stop         REAL,
			target1      REAL,
			target2      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_picks_ts ON candidate_picks(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullable maps the undefined sentinel to SQL NULL so history queries never
// mistake "unavailable" for a real value.
func nullable(v float64) any {
	if !calculator.Defined(v) {
		return nil
	}
	return v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *SQLiteRecorder) RecordBriefing(rec *BriefingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	flowForeign, flowInst := calculator.Undefined(), calculator.Undefined()
	if f := rec.Pulse.Flow; f != nil {
		flowForeign, flowInst = f.Foreign, f.Institutional
	}

	a := rec.Assessment
	_, err := r.db.Exec(`INSERT INTO briefings
		(timestamp, date, risk_level, risk_hits,
		 hit_domestic, hit_growth, hit_vol, hit_flow,
		 nasdaq_ret, sp500_ret, kospi_ret, kosdaq_ret, vix_ret,
		 flow_foreign, flow_inst, usdkrw)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Date, string(a.Level), a.Hits,
		boolInt(a.DomesticDown), boolInt(a.GrowthDown), boolInt(a.VolatilityUp), boolInt(a.FlowBothSelling),
		nullable(rec.Pulse.Nasdaq), nullable(rec.Pulse.SP500), nullable(rec.Pulse.Domestic),
		nullable(rec.Pulse.Growth), nullable(rec.Pulse.Volatility),
		nullable(flowForeign), nullable(flowInst), nullable(rec.USDKRW),
	)
	return err
}

func (r *SQLiteRecorder) RecordExitSignal(rec *ExitSignalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := rec.Snapshot
	if snap == nil {
		snap = &model.TechnicalSnapshot{
			Close: calculator.Undefined(), Chg1D: calculator.Undefined(), Chg5D: calculator.Undefined(),
			MA20: calculator.Undefined(), Dist20: calculator.Undefined(), RSI14: calculator.Undefined(),
			High3M: calculator.Undefined(),
		}
	}

	flags := ""
	for i, f := range rec.Signal.Flags.Active() {
		if i > 0 {
			flags += ","
		}
		flags += string(f)
	}

	_, err := r.db.Exec(`INSERT INTO exit_signals
		(timestamp, date, symbol, close, chg1d, chg5d, ma20, dist20, rsi14, high_3m,
		 flag_count, flags, stage, entry_verdict)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Date, rec.Symbol,
		nullable(snap.Close), nullable(snap.Chg1D), nullable(snap.Chg5D),
		nullable(snap.MA20), nullable(snap.Dist20), nullable(snap.RSI14), nullable(snap.High3M),
		rec.Signal.Flags.Count(), flags, rec.Signal.Stage.String(), string(rec.Entry.Verdict),
	)
	return err
}

func (r *SQLiteRecorder) RecordPicks(date string, picks []model.ScoredCandidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	for i, p := range picks {
		var entryLow, entryHigh, stop, t1, t2 any
		if g := p.Guide; g != nil {
			entryLow, entryHigh = nullable(g.EntryLow), nullable(g.EntryHigh)
			stop, t1, t2 = nullable(g.Stop), nullable(g.Target1), nullable(g.Target2)
		}
		_, err := r.db.Exec(`INSERT INTO candidate_picks
			(timestamp, date, rank, code, close, momentum5, dist20, eps, per,
			 flow_penalty, score, entry_low, entry_high, stop, target1, target2)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			now, date, i+1, p.ID,
			nullable(p.Close), nullable(p.Momentum5), nullable(p.Dist20),
			nullable(p.EPS), nullable(p.PER), p.FlowPenalty, p.Score,
			entryLow, entryHigh, stop, t1, t2,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
