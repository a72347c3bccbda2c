package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// USInstrument is one tracked US-listed position.
type USInstrument struct {
	Name    string `yaml:"name"`
	Symbol  string `yaml:"symbol"`
	SECAtom string `yaml:"sec_atom"` // company 8-K Atom feed, optional
}

// KRHolding is one domestic core holding shown in the light quote section.
type KRHolding struct {
	Name string `yaml:"name"`
	Code string `yaml:"code"` // 6-digit ticker
}

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	OpenAI struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`
	DART struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"dart"`
	DataSource struct {
		KRXBaseURL string `yaml:"krx_base_url"`
		APIKey     string `yaml:"api_key"`
	} `yaml:"data_source"`
	Watchlist struct {
		US     []USInstrument `yaml:"us"`
		KRCore []KRHolding    `yaml:"kr_core"`
	} `yaml:"watchlist"`
	Universe struct {
		TopNEach  int `yaml:"top_n_each"`
		PickLimit int `yaml:"pick_limit"`
	} `yaml:"universe"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAI.Model = v
	}
	if v := os.Getenv("DART_API_KEY"); v != "" {
		cfg.DART.APIKey = v
	}
	if v := os.Getenv("KRX_BASE_URL"); v != "" {
		cfg.DataSource.KRXBaseURL = v
	}
	if v := os.Getenv("KRX_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Universe.TopNEach == 0 {
		cfg.Universe.TopNEach = 25
	}
	if cfg.Universe.PickLimit == 0 {
		cfg.Universe.PickLimit = 3
	}
	if cfg.Schedule.DailyCron == "" {
		// Weekday mornings 07:40 KST, before the domestic open.
		cfg.Schedule.DailyCron = "0 40 7 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/daily_briefing.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.DataSource.KRXBaseURL == "" {
		return fmt.Errorf("data_source.krx_base_url is required")
	}
	if c.Universe.TopNEach < 0 || c.Universe.PickLimit < 0 {
		return fmt.Errorf("universe settings must not be negative")
	}
	for i, inst := range c.Watchlist.US {
		if inst.Symbol == "" {
			return fmt.Errorf("watchlist.us[%d]: symbol is required", i)
		}
	}
	for i, h := range c.Watchlist.KRCore {
		if h.Code == "" {
			return fmt.Errorf("watchlist.kr_core[%d]: code is required", i)
		}
	}
	return nil
}
