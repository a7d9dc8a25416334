package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultLaunchDate is the start of DT issuance day 1.
const DefaultLaunchDate = "2017-10-31T16:00:00Z"

// DefaultAvgVolume is the average daily trading volume, in 亿, assumed when none is configured.
const DefaultAvgVolume = 8.0

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		CoinIDs []int  `yaml:"coin_ids"`
	} `yaml:"data_source"`
	Economy struct {
		LaunchDate   string  `yaml:"launch_date"`
		ExchangeRate float64 `yaml:"exchange_rate"`
		AvgVolume    float64 `yaml:"avg_volume"`
		CostHighRate float64 `yaml:"cost_high_rate"`
		CostLowRate  float64 `yaml:"cost_low_rate"`
	} `yaml:"economy"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Report struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"report"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	// Zero is a valid volume, so the default is seeded before parsing.
	cfg.Economy.AvgVolume = DefaultAvgVolume

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
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DRAGONEX_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DRAGONEX_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("EXCHANGE_RATE"); v != "" {
		var rate float64
		if _, err := fmt.Sscanf(v, "%f", &rate); err == nil {
			cfg.Economy.ExchangeRate = rate
		}
	}
	if v := os.Getenv("AVG_VOLUME"); v != "" {
		var volume float64
		if _, err := fmt.Sscanf(v, "%f", &volume); err == nil {
			cfg.Economy.AvgVolume = volume
		}
	}
	if v := os.Getenv("LAUNCH_DATE"); v != "" {
		cfg.Economy.LaunchDate = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Economy.LaunchDate == "" {
		cfg.Economy.LaunchDate = DefaultLaunchDate
	}
	if cfg.Economy.ExchangeRate == 0 {
		cfg.Economy.ExchangeRate = 6.5
	}
	if cfg.Economy.CostHighRate == 0 {
		cfg.Economy.CostHighRate = 0.3
	}
	if cfg.Economy.CostLowRate == 0 {
		cfg.Economy.CostLowRate = 0.5
	}
	if cfg.Schedule.DailyCron == "" {
		// 15:59:55 UTC, just before the Beijing day rolls over.
		cfg.Schedule.DailyCron = "55 59 15 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/dragon_bonus.db"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if _, err := c.Launch(); err != nil {
		return err
	}
	if c.Economy.ExchangeRate <= 0 {
		return fmt.Errorf("economy.exchange_rate must be positive")
	}
	if c.Economy.AvgVolume < 0 {
		return fmt.Errorf("economy.avg_volume must not be negative")
	}
	if c.Economy.CostHighRate <= 0 || c.Economy.CostHighRate > 1 {
		return fmt.Errorf("economy.cost_high_rate must be in (0, 1]")
	}
	if c.Economy.CostLowRate <= 0 || c.Economy.CostLowRate > 1 {
		return fmt.Errorf("economy.cost_low_rate must be in (0, 1]")
	}
	return nil
}

// Launch returns the parsed launch instant.
func (c *Config) Launch() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, c.Economy.LaunchDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("economy.launch_date: %w", err)
	}
	return t, nil
}

// NotifyEnabled reports whether Telegram credentials are configured.
func (c *Config) NotifyEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
