package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Universe.TopNEach != 25 {
		t.Errorf("TopNEach = %d, want 25", cfg.Universe.TopNEach)
	}
	if cfg.Universe.PickLimit != 3 {
		t.Errorf("PickLimit = %d, want 3", cfg.Universe.PickLimit)
	}
	if cfg.Schedule.DailyCron == "" {
		t.Error("expected default daily cron")
	}
	if cfg.Database.SQLitePath == "" {
		t.Error("expected default sqlite path")
	}
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
telegram:
  bot_token: "file-token"
  chat_id: 12345
data_source:
  krx_base_url: "http://localhost:8080"
watchlist:
  us:
    - name: "Palantir"
      symbol: "PLTR"
  kr_core:
    - name: "Samsung Electronics"
      code: "005930"
universe:
  top_n_each: 10
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("TELEGRAM_CHAT_ID", "67890")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.BotToken != "env-token" {
		t.Errorf("BotToken = %q, env should override file", cfg.Telegram.BotToken)
	}
	if cfg.Telegram.ChatID != 67890 {
		t.Errorf("ChatID = %d, want 67890", cfg.Telegram.ChatID)
	}
	if cfg.Universe.TopNEach != 10 {
		t.Errorf("TopNEach = %d, want 10", cfg.Universe.TopNEach)
	}
	if len(cfg.Watchlist.US) != 1 || cfg.Watchlist.US[0].Symbol != "PLTR" {
		t.Errorf("unexpected US watchlist: %+v", cfg.Watchlist.US)
	}
	if len(cfg.Watchlist.KRCore) != 1 || cfg.Watchlist.KRCore[0].Code != "005930" {
		t.Errorf("unexpected KR core list: %+v", cfg.Watchlist.KRCore)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty config")
	}

	cfg.Telegram.BotToken = "t"
	cfg.Telegram.ChatID = 1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing krx_base_url")
	}

	cfg.DataSource.KRXBaseURL = "http://localhost:8080"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cfg.Watchlist.US = []USInstrument{{Name: "NoSymbol"}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for watchlist entry without symbol")
	}
}
