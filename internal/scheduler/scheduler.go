package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"DailyBriefing/internal/collector"
	"DailyBriefing/internal/config"
	"DailyBriefing/internal/model"
	"DailyBriefing/internal/news"
	"DailyBriefing/internal/notifier"
	"DailyBriefing/internal/recorder"
	"DailyBriefing/internal/strategy"
	"DailyBriefing/internal/summarizer"
)

const headlinesPerTopic = 5

// Scheduler runs the daily briefing cycle and serves chat commands.
type Scheduler struct {
	Cron       *cron.Cron
	Collector  *collector.Collector
	News       *news.Client
	DART       *news.DARTClient
	Summarizer *summarizer.Summarizer
	Notifier   *notifier.TelegramNotifier
	Recorder   recorder.Recorder
	Ctx        context.Context

	USWatch   []config.USInstrument
	KRCore    []config.KRHolding
	TopNEach  int
	PickLimit int

	logger zerolog.Logger
}

// NewScheduler creates a Scheduler over the assembled components.
func NewScheduler(ctx context.Context, cfg *config.Config, col *collector.Collector,
	nw *news.Client, dart *news.DARTClient, sum *summarizer.Summarizer,
	tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Collector:  col,
		News:       nw,
		DART:       dart,
		Summarizer: sum,
		Notifier:   tn,
		Recorder:   rec,
		Ctx:        ctx,
		USWatch:    cfg.Watchlist.US,
		KRCore:     cfg.Watchlist.KRCore,
		TopNEach:   cfg.Universe.TopNEach,
		PickLimit:  cfg.Universe.PickLimit,
		logger:     log.With().Str("component", "scheduler").Logger(),
	}
}

// Register registers the daily briefing task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyBriefing); err != nil {
		return fmt.Errorf("register daily briefing: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.logger.Info().Msg("scheduler stopped")
}

// RunNow executes the daily briefing immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyBriefing()
}

// cycle is one evaluation pass: everything recomputed from the day's data,
// nothing carried over from the previous run.
type cycle struct {
	date       string // KRX business day, YYYYMMDD
	usdkrw     float64
	pulse      model.MarketPulse
	assessment model.RiskAssessment
	picks      []model.ScoredCandidate
}

func (s *Scheduler) dailyBriefing() {
	start := time.Now()
	s.logger.Info().Msg("running daily briefing")

	cyc := s.evaluate()

	var b strings.Builder
	b.WriteString(notifier.FormatHeader(time.Now(), cyc.usdkrw))
	b.WriteString("\n\n")
	b.WriteString(notifier.FormatMarketBrief(cyc.pulse, cyc.assessment, cyc.date))

	// Instrument blocks open with their own blank line.
	for _, inst := range s.USWatch {
		b.WriteString(s.usSection(inst, cyc))
	}
	for _, holding := range s.KRCore {
		b.WriteString(s.krSection(holding, cyc))
	}

	b.WriteString("\n\n")
	b.WriteString(notifier.FormatPicks(cyc.picks, cyc.assessment.Level))
	b.WriteString("\n\n")
	b.WriteString(notifier.BriefingFooter())

	s.trySend(b.String())

	if err := s.Recorder.RecordPicks(cyc.date, cyc.picks); err != nil {
		s.logger.Error().Err(err).Msg("record picks")
	}

	s.logger.Info().
		Str("risk", string(cyc.assessment.Level)).
		Int("picks", len(cyc.picks)).
		Dur("elapsed", time.Since(start)).
		Msg("daily briefing sent")
}

// evaluate runs the market-wide half of the cycle: business day, pulse, risk,
// FX, universe ranking. Per-instrument work happens in the section builders.
func (s *Scheduler) evaluate() cycle {
	date, err := s.Collector.Domestic.NearestBusinessDay(s.Ctx)
	if err != nil {
		date = time.Now().Format("20060102")
		s.logger.Warn().Err(err).Str("fallback", date).Msg("business day lookup failed")
	}

	pulse := s.Collector.CollectPulse(s.Ctx, date)
	assessment := strategy.AssessRisk(pulse)
	usdkrw := s.Collector.CollectUSDKRW(s.Ctx)

	cyc := cycle{
		date:       date,
		usdkrw:     usdkrw,
		pulse:      pulse,
		assessment: assessment,
	}

	if err := s.Recorder.RecordBriefing(&recorder.BriefingRecord{
		Date:       date,
		Pulse:      pulse,
		Assessment: assessment,
		USDKRW:     usdkrw,
	}); err != nil {
		s.logger.Error().Err(err).Msg("record briefing")
	}

	universe := s.Collector.CollectUniverse(s.Ctx, date, s.TopNEach)
	cyc.picks = strategy.RankCandidates(universe, assessment.Level, s.PickLimit)
	for i := range cyc.picks {
		cyc.picks[i].Name = s.Collector.Domestic.TickerName(s.Ctx, cyc.picks[i].ID)
	}
	return cyc
}

// usSection builds one tracked US instrument's block: snapshot, exit stage,
// entry plan, headlines and the AI read on them.
func (s *Scheduler) usSection(inst config.USInstrument, cyc cycle) string {
	var snap *model.TechnicalSnapshot
	series, err := s.Collector.CollectInstrument(s.Ctx, inst.Symbol)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", inst.Symbol).Msg("instrument fetch failed")
	} else {
		snap = strategy.BuildSnapshot(series)
	}

	sig := strategy.EvaluateExit(snap)
	advice := s.planEntry(snap, cyc.assessment.Level)

	if err := s.Recorder.RecordExitSignal(&recorder.ExitSignalRecord{
		Date:     cyc.date,
		Symbol:   inst.Symbol,
		Snapshot: snap,
		Signal:   sig,
		Entry:    advice,
	}); err != nil {
		s.logger.Error().Err(err).Str("symbol", inst.Symbol).Msg("record exit signal")
	}

	var b strings.Builder
	b.WriteString(notifier.FormatUSInstrument(inst.Name, cyc.usdkrw, snap, sig, advice))

	headlines := s.News.GoogleNews(s.Ctx, inst.Name+" stock", headlinesPerTopic)
	if inst.SECAtom != "" {
		headlines = append(headlines, s.News.SECFilings(s.Ctx, inst.SECAtom, headlinesPerTopic)...)
	}
	bullets := toBullets(headlines)
	if h := notifier.FormatHeadlines(bullets); h != "" {
		b.WriteString("\n" + h)
	}
	b.WriteString("\n" + s.Summarizer.SummarizeHeadlines(s.Ctx, inst.Name, bullets))
	return b.String()
}

// krSection builds one domestic core holding's block: light quote, DART
// disclosures and news, plus the AI read.
func (s *Scheduler) krSection(holding config.KRHolding, cyc cycle) string {
	quote := s.Collector.CollectCoreQuote(s.Ctx, holding.Code, holding.Name, cyc.date)

	var b strings.Builder
	b.WriteString(notifier.FormatCoreQuote(quote, holding.Name))

	headlines := s.DART.RecentDisclosures(s.Ctx, holding.Code, holding.Name, headlinesPerTopic)
	headlines = append(headlines, s.News.GoogleNews(s.Ctx, holding.Name, headlinesPerTopic)...)
	bullets := toBullets(headlines)
	if h := notifier.FormatHeadlines(bullets); h != "" {
		b.WriteString("\n" + h)
	}
	b.WriteString("\n" + s.Summarizer.SummarizeHeadlines(s.Ctx, holding.Name, bullets))
	return b.String()
}

func (s *Scheduler) planEntry(snap *model.TechnicalSnapshot, level model.RiskLevel) model.EntryAdvice {
	if snap == nil {
		return strategy.PlanEntry(0, 0, level)
	}
	return strategy.PlanEntry(snap.Close, snap.MA20, level)
}

func toBullets(headlines []news.Headline) []string {
	bullets := make([]string, 0, len(headlines))
	for _, h := range headlines {
		bullets = append(bullets, h.Bullet())
	}
	return bullets
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/briefing":
		go s.dailyBriefing()
		return "On it, the full briefing is being prepared."
	case "/risk":
		cyc := s.riskOnly()
		return notifier.FormatRiskDetail(cyc.assessment)
	case "/reco":
		cyc := s.riskOnly()
		universe := s.Collector.CollectUniverse(s.Ctx, cyc.date, s.TopNEach)
		picks := strategy.RankCandidates(universe, cyc.assessment.Level, s.PickLimit)
		for i := range picks {
			picks[i].Name = s.Collector.Domestic.TickerName(s.Ctx, picks[i].ID)
		}
		return notifier.FormatPicks(picks, cyc.assessment.Level)
	case "/help":
		return "Commands:\n• /briefing - full morning briefing now\n• /risk - market risk check\n• /reco - today's candidate picks\n• /help - this message"
	default:
		return "Unknown command. Try /help."
	}
}

// riskOnly runs the cheap half of the cycle for interactive commands, without
// recording or sending.
func (s *Scheduler) riskOnly() cycle {
	date, err := s.Collector.Domestic.NearestBusinessDay(s.Ctx)
	if err != nil {
		date = time.Now().Format("20060102")
	}
	pulse := s.Collector.CollectPulse(s.Ctx, date)
	return cycle{date: date, pulse: pulse, assessment: strategy.AssessRisk(pulse)}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.Send(s.Ctx, text); err != nil {
		s.logger.Error().Err(err).Msg("send briefing")
	}
}
