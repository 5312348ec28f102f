package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"fxconfluence/internal/model"
)

// Config holds all application configuration.
type Config struct {
	TwelveAPIKey string
	LogLevel     string

	// Provider tuning
	RequestTimeout time.Duration
	RequestsPerSec int
	MaxRetries     int
	RetryPause     time.Duration
	CacheTTL       time.Duration

	// Scan tuning
	ScanWorkers  int
	ScanInterval string // cron spec for background scans, empty disables

	// Optional collaborators
	RedisAddr        string
	TelegramBotToken string
	TelegramChatID   int64

	// HTTP surface
	ListenAddr string

	// Universe
	Instruments []model.Instrument
	Timeframes  []model.TimeframeSpec
}

// universeFile is the YAML shape of an external universe definition.
type universeFile struct {
	Instruments []model.Instrument    `yaml:"instruments"`
	Timeframes  []model.TimeframeSpec `yaml:"timeframes"`
}

// Load initializes configuration from environment variables, reading
// .env first if present. UNIVERSE_FILE points at an optional YAML file
// overriding the built-in instrument list and timeframe table.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &Config{
		TwelveAPIKey:   os.Getenv("TWELVE_API_KEY"),
		LogLevel:       getEnvWithDefault("LOG_LEVEL", "info"),
		RequestTimeout: time.Duration(getEnvIntWithDefault("REQUEST_TIMEOUT", 30)) * time.Second,
		RequestsPerSec: getEnvIntWithDefault("REQUESTS_PER_SEC", 5),
		MaxRetries:     getEnvIntWithDefault("FETCH_RETRIES", 2),
		RetryPause:     time.Duration(getEnvIntWithDefault("FETCH_RETRY_PAUSE_MS", 500)) * time.Millisecond,
		CacheTTL:       time.Duration(getEnvIntWithDefault("CACHE_TTL_SEC", 300)) * time.Second,
		ScanWorkers:    getEnvIntWithDefault("SCAN_WORKERS", 1),
		ScanInterval:   getEnvWithDefault("SCAN_CRON", "0 */15 * * * *"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		ListenAddr:     getEnvWithDefault("LISTEN_ADDR", ":8080"),
	}

	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	cfg.Instruments = DefaultInstruments()
	cfg.Timeframes = DefaultTimeframes()

	if path := os.Getenv("UNIVERSE_FILE"); path != "" {
		if err := cfg.loadUniverse(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *Config) loadUniverse(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read universe file: %w", err)
	}
	var uf universeFile
	if err := yaml.Unmarshal(data, &uf); err != nil {
		return fmt.Errorf("parse universe file: %w", err)
	}
	if len(uf.Instruments) > 0 {
		c.Instruments = uf.Instruments
	}
	if len(uf.Timeframes) > 0 {
		c.Timeframes = uf.Timeframes
	}
	return nil
}

// Validate checks that the configuration can drive a scan.
func (c *Config) Validate() error {
	if c.TwelveAPIKey == "" {
		return fmt.Errorf("TWELVE_API_KEY is required")
	}
	if len(c.Instruments) == 0 {
		return fmt.Errorf("instrument universe is empty")
	}
	if len(c.Timeframes) == 0 {
		return fmt.Errorf("timeframe table is empty")
	}
	for _, tf := range c.Timeframes {
		if tf.TrendWindow <= 0 {
			return fmt.Errorf("timeframe %s: trend_window must be positive", tf.Name)
		}
	}
	if c.ScanWorkers < 1 {
		return fmt.Errorf("SCAN_WORKERS must be at least 1")
	}
	return nil
}

// DefaultTimeframes returns the standard four-resolution table.
// Coarser timeframes carry longer EMA windows.
func DefaultTimeframes() []model.TimeframeSpec {
	return []model.TimeframeSpec{
		{Name: "Weekly", Interval: "1week", TrendWindow: 200, Lookback: 500},
		{Name: "Daily", Interval: "1day", TrendWindow: 200, Lookback: 500},
		{Name: "H4", Interval: "4h", TrendWindow: 50, Lookback: 500},
		{Name: "H1", Interval: "1h", TrendWindow: 20, Lookback: 500},
	}
}

// DefaultInstruments returns the built-in universe: majors, crosses,
// exotics, indices and metals.
func DefaultInstruments() []model.Instrument {
	return []model.Instrument{
		// Majors
		{Name: "EUR/USD", Symbol: "EUR/USD"},
		{Name: "GBP/USD", Symbol: "GBP/USD"},
		{Name: "USD/JPY", Symbol: "USD/JPY"},
		{Name: "USD/CHF", Symbol: "USD/CHF"},
		{Name: "AUD/USD", Symbol: "AUD/USD"},
		{Name: "NZD/USD", Symbol: "NZD/USD"},
		{Name: "USD/CAD", Symbol: "USD/CAD"},
		// Crosses
		{Name: "EUR/GBP", Symbol: "EUR/GBP"},
		{Name: "EUR/JPY", Symbol: "EUR/JPY"},
		{Name: "GBP/JPY", Symbol: "GBP/JPY"},
		{Name: "AUD/JPY", Symbol: "AUD/JPY"},
		{Name: "AUD/NZD", Symbol: "AUD/NZD"},
		{Name: "CHF/JPY", Symbol: "CHF/JPY"},
		// Exotics
		{Name: "USD/SGD", Symbol: "USD/SGD"},
		{Name: "USD/TRY", Symbol: "USD/TRY"},
		{Name: "USD/ZAR", Symbol: "USD/ZAR"},
		{Name: "USD/MXN", Symbol: "USD/MXN"},
		// Indices
		{Name: "S&P 500", Symbol: "SPX"},
		{Name: "Dow Jones", Symbol: "DJI"},
		{Name: "Nasdaq 100", Symbol: "NDX"},
		{Name: "FTSE 100", Symbol: "UKX"},
		{Name: "DAX", Symbol: "DAX"},
		// Metals
		{Name: "Gold", Symbol: "XAU/USD"},
		{Name: "Silver", Symbol: "XAG/USD"},
	}
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
