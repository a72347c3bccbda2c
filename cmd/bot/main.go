package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"DailyBriefing/internal/collector"
	"DailyBriefing/internal/config"
	"DailyBriefing/internal/news"
	"DailyBriefing/internal/notifier"
	"DailyBriefing/internal/platform/httpx"
	"DailyBriefing/internal/recorder"
	"DailyBriefing/internal/scheduler"
	"DailyBriefing/internal/summarizer"
)

func main() {
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if os.Getenv("LOG_LEVEL") == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Info().Msg("DailyBriefing starting")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	// Shared HTTP client for every upstream
	httpClient := httpx.NewClient(httpx.Options{Proxy: cfg.Proxy})

	// Data sources
	global := collector.NewYahooFetcher(httpClient)
	domestic := collector.NewKRXFetcher(cfg.DataSource.KRXBaseURL, cfg.DataSource.APIKey, httpClient)
	log.Info().Str("global", global.Name()).Str("domestic", domestic.Name()).Msg("data sources ready")

	col := collector.NewCollector(global, domestic)
	newsClient := news.NewClient(httpClient)
	dartClient := news.NewDARTClient(cfg.DART.APIKey, httpClient)
	sum := summarizer.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	if !sum.Enabled() {
		log.Warn().Msg("no OpenAI key, AI summaries disabled")
	}

	// Telegram notifier
	tn, err := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		log.Fatal().Err(err).Msg("init telegram notifier")
	}

	// Recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scheduler
	sched := scheduler.NewScheduler(ctx, cfg, col, newsClient, dartClient, sum, tn, rec)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatal().Err(err).Msg("register cron task")
	}
	sched.Start()
	defer sched.Stop()

	// Telegram polling for commands
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info().Msg("telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, sending a briefing now")
		go sched.RunNow()
	}

	log.Info().Str("cron", cfg.Schedule.DailyCron).Msg("DailyBriefing is running")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()
	log.Info().Msg("DailyBriefing stopped")
}
