package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"TWStockBoard/internal/cache"
)

// Config holds all application configuration.
type Config struct {
	Exchange struct {
		StockDayURL       string        `yaml:"stock_day_url"`
		Timeout           time.Duration `yaml:"timeout"`
		RequestsPerMinute int           `yaml:"requests_per_minute"`
	} `yaml:"exchange"`
	Directory struct {
		LocalFile   string        `yaml:"local_file"`
		OpenDataURL string        `yaml:"open_data_url"`
		ISINURL     string        `yaml:"isin_url"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"directory"`
	Cache struct {
		Backend    string `yaml:"backend"`
		MaxEntries int    `yaml:"max_entries"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"cache"`
	News struct {
		FeedURL  string        `yaml:"feed_url"`
		Language string        `yaml:"language"`
		Region   string        `yaml:"region"`
		PerMonth int           `yaml:"per_month"`
		Timeout  time.Duration `yaml:"timeout"`
		Disabled bool          `yaml:"disabled"`
	} `yaml:"news"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		ReportCron     string   `yaml:"report_cron"`
		Watchlist      []string `yaml:"watchlist"`
		LookbackMonths int      `yaml:"lookback_months"`
	} `yaml:"schedule"`
	HTTP struct {
		Addr        string `yaml:"addr"`
		FrontendURL string `yaml:"frontend_url"`
	} `yaml:"http"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
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
	if v := os.Getenv("TWSE_STOCK_DAY_URL"); v != "" {
		cfg.Exchange.StockDayURL = v
	}
	if v := os.Getenv("COMPANY_FILE"); v != "" {
		cfg.Directory.LocalFile = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("CACHE_MAX_ENTRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.MaxEntries = n
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		cfg.HTTP.FrontendURL = v
	}
	if v := os.Getenv("CRON_REPORT"); v != "" {
		cfg.Schedule.ReportCron = v
	}

	// Defaults
	if cfg.Exchange.StockDayURL == "" {
		cfg.Exchange.StockDayURL = "https://www.twse.com.tw/exchangeReport/STOCK_DAY"
	}
	if cfg.Exchange.Timeout == 0 {
		cfg.Exchange.Timeout = 15 * time.Second
	}
	if cfg.Directory.LocalFile == "" {
		cfg.Directory.LocalFile = "data/t187ap03_L.json"
	}
	if cfg.Directory.OpenDataURL == "" {
		cfg.Directory.OpenDataURL = "https://openapi.twse.com.tw/v1/opendata/t187ap03_L"
	}
	if cfg.Directory.ISINURL == "" {
		cfg.Directory.ISINURL = "https://isin.twse.com.tw/isin/C_public.jsp?strMode=2"
	}
	if cfg.Directory.Timeout == 0 {
		cfg.Directory.Timeout = 20 * time.Second
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = cache.BackendMemory
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = cache.DefaultMaxEntries
	}
	if cfg.Cache.SQLitePath == "" {
		cfg.Cache.SQLitePath = cache.MemoryDSN
	}
	if cfg.News.Language == "" {
		cfg.News.Language = "zh-TW"
	}
	if cfg.News.Region == "" {
		cfg.News.Region = "TW"
	}
	if cfg.News.PerMonth == 0 {
		cfg.News.PerMonth = 5
	}
	if cfg.News.Timeout == 0 {
		cfg.News.Timeout = 15 * time.Second
	}
	if cfg.Schedule.ReportCron == "" {
		cfg.Schedule.ReportCron = "0 30 14 * * 1-5"
	}
	if cfg.Schedule.LookbackMonths == 0 {
		cfg.Schedule.LookbackMonths = 3
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}

	return cfg, nil
}

// Validate checks the settings every command depends on.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case cache.BackendMemory, cache.BackendSQLite, cache.BackendNone:
	default:
		return fmt.Errorf("cache.backend must be one of memory, sqlite, none; got %q", c.Cache.Backend)
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must not be negative")
	}
	if c.Exchange.Timeout <= 0 || c.Directory.Timeout <= 0 || c.News.Timeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.Exchange.RequestsPerMinute < 0 {
		return fmt.Errorf("exchange.requests_per_minute must not be negative")
	}
	if c.News.PerMonth <= 0 {
		return fmt.Errorf("news.per_month must be positive")
	}
	if c.Schedule.LookbackMonths <= 0 {
		return fmt.Errorf("schedule.lookback_months must be positive")
	}
	return nil
}

// ValidateTelegram checks the settings the Telegram watcher needs.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
