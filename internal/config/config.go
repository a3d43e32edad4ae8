package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

var (
	ErrMissingDB       = errors.New("DATABASE_URL is required")
	ErrMissingPasscode = errors.New("SCANNER_PASSCODE is required")
)

type Config struct {
	HTTP      HTTPConfig
	Database  DatabaseConfig
	Quota     QuotaConfig
	LLM       LLMConfig
	Tavily    TavilyConfig
	Scan      ScanConfig
	Log       LogConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type HTTPConfig struct {
	Addr        string
	MetricsAddr string
}

type DatabaseConfig struct {
	URL string
}

type QuotaConfig struct {
	DailyRuns int
	Passcode  string
}

type LLMConfig struct {
	Provider   string
	OpenRouter OpenRouterConfig
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type TavilyConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type ScanConfig struct {
	MaxResults    int
	StageDelayMin time.Duration
	StageDelayMax time.Duration
}

type LogConfig struct {
	Level string
}

type CacheConfig struct {
	TTL time.Duration
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Addr:        getEnvOrDefault("HTTP_ADDR", ":8080"),
			MetricsAddr: getEnvOrDefault("METRICS_ADDR", ":9090"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Quota: QuotaConfig{
			DailyRuns: getEnvIntOrDefault("DAILY_QUOTA", 100),
			Passcode:  os.Getenv("SCANNER_PASSCODE"),
		},
		LLM: LLMConfig{
			Provider: getEnvOrDefault("LLM_PROVIDER", "openrouter"),
			OpenRouter: OpenRouterConfig{
				APIKey:  os.Getenv("OPENROUTER_API_KEY"),
				Model:   getEnvOrDefault("OPENROUTER_MODEL", "deepseek/deepseek-chat"),
				BaseURL: getEnvOrDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			},
		},
		Tavily: TavilyConfig{
			APIKey:  os.Getenv("TAVILY_API_KEY"),
			BaseURL: getEnvOrDefault("TAVILY_BASE_URL", "https://api.tavily.com"),
			Timeout: time.Duration(getEnvIntOrDefault("TAVILY_TIMEOUT_SEC", 30)) * time.Second,
		},
		Scan: ScanConfig{
			MaxResults:    getEnvIntOrDefault("SCAN_MAX_RESULTS", 10),
			StageDelayMin: time.Duration(getEnvIntOrDefault("STAGE_DELAY_MIN_MS", 500)) * time.Millisecond,
			StageDelayMax: time.Duration(getEnvIntOrDefault("STAGE_DELAY_MAX_MS", 1000)) * time.Millisecond,
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Cache: CacheConfig{
			TTL: time.Duration(getEnvIntOrDefault("CACHE_TTL_SEC", 3600)) * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvIntOrDefault("RATE_LIMIT_PER_MINUTE", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return ErrMissingDB
	}
	if c.Quota.Passcode == "" {
		return ErrMissingPasscode
	}
	if c.Scan.MaxResults < 5 {
		c.Scan.MaxResults = 5
	}
	if c.Scan.MaxResults > 12 {
		c.Scan.MaxResults = 12
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
