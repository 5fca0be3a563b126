package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// External service configurations
	Alpaca       AlpacaConfig
	AlphaVantage AlphaVantageConfig
	NewsAPI      NewsAPIConfig

	// Indicator configuration
	Indicator IndicatorConfig

	// Agent configuration
	Agent AgentConfig

	// Meeting orchestration configuration
	Meeting MeetingConfig

	// Backtest configuration
	Backtest BacktestConfig

	// HTTP configuration
	HTTP HTTPConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// AlpacaConfig holds Alpaca API configuration
type AlpacaConfig struct {
	APIKey    string
	APISecret string
	BaseURL   string
}

// AlphaVantageConfig holds Alpha Vantage API configuration
type AlphaVantageConfig struct {
	APIKey string
}

// NewsAPIConfig holds NewsAPI configuration
type NewsAPIConfig struct {
	APIKey string
}

// IndicatorConfig holds indicator engine configuration
type IndicatorConfig struct {
	Windows []int
}

// AgentConfig holds scoring and synthesis configuration
type AgentConfig struct {
	TargetVolatility  float64
	MaxWeightPerAsset float64
	MaxSectorExposure float64
	MinConfidence     float64
	MaxGrossExposure  float64
}

// MeetingConfig holds meeting orchestration configuration
type MeetingConfig struct {
	Interval         string
	NewsLimit        int
	ConcurrencyLimit int
	TimeoutSeconds   int
}

// BacktestConfig holds backtest evaluation configuration. A zero
// PeriodsPerYear means no explicit override: the annualization factor is
// then derived from the configured bar interval at wiring time.
type BacktestConfig struct {
	PeriodsPerYear int
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Port               int
	CORSAllowedOrigins string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Alpaca: AlpacaConfig{
			APIKey:    os.Getenv("ALPACA_API_KEY"),
			APISecret: os.Getenv("ALPACA_API_SECRET"),
			BaseURL:   getEnvString("ALPACA_BASE_URL", "https://paper-api.alpaca.markets"),
		},
		AlphaVantage: AlphaVantageConfig{
			APIKey: os.Getenv("ALPHA_VANTAGE_API_KEY"),
		},
		NewsAPI: NewsAPIConfig{
			APIKey: os.Getenv("NEWS_API_KEY"),
		},
		Indicator: IndicatorConfig{
			Windows: getEnvIntSlice("INDICATOR_WINDOWS", []int{5, 10, 20, 50, 100, 200}),
		},
		Agent: AgentConfig{
			TargetVolatility:  getEnvFloatRange("AGENT_TARGET_VOLATILITY", 0.3, 0.01, 5.0),
			MaxWeightPerAsset: getEnvFloatRange("AGENT_MAX_WEIGHT_PER_ASSET", 0.2, 0.001, 1.0),
			MaxSectorExposure: getEnvFloatRange("AGENT_MAX_SECTOR_EXPOSURE", 0.5, 0.001, 1.0),
			MinConfidence:     getEnvFloatUnbounded("AGENT_MIN_CONFIDENCE", 0.1),
			MaxGrossExposure:  getEnvFloatRange("AGENT_MAX_GROSS_EXPOSURE", 1.0, 0.01, 2.0),
		},
		Meeting: MeetingConfig{
			Interval:         getEnvString("MEETING_INTERVAL", "1d"),
			NewsLimit:        getEnvInt("MEETING_NEWS_LIMIT", 20),
			ConcurrencyLimit: getEnvInt("MEETING_CONCURRENCY_LIMIT", 4),
			TimeoutSeconds:   getEnvInt("MEETING_TIMEOUT_SECONDS", 60),
		},
		Backtest: BacktestConfig{
			PeriodsPerYear: getEnvInt("BACKTEST_PERIODS_PER_YEAR", 0),
		},
		HTTP: HTTPConfig{
			Port:               getEnvInt("HTTP_PORT", 8080),
			CORSAllowedOrigins: getEnvString("CORS_ALLOWED_ORIGINS", "*"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Indicator.Windows) == 0 {
		return fmt.Errorf("INDICATOR_WINDOWS must contain at least one window")
	}
	for _, w := range c.Indicator.Windows {
		if w <= 0 {
			return fmt.Errorf("INDICATOR_WINDOWS entries must be positive, got %d", w)
		}
	}

	if c.Agent.MaxWeightPerAsset <= 0 || c.Agent.MaxWeightPerAsset > 1 {
		return fmt.Errorf("AGENT_MAX_WEIGHT_PER_ASSET must be in (0, 1], got %.3f", c.Agent.MaxWeightPerAsset)
	}
	if c.Agent.MaxSectorExposure <= 0 || c.Agent.MaxSectorExposure > 1 {
		return fmt.Errorf("AGENT_MAX_SECTOR_EXPOSURE must be in (0, 1], got %.3f", c.Agent.MaxSectorExposure)
	}
	if c.Agent.TargetVolatility <= 0 {
		return fmt.Errorf("AGENT_TARGET_VOLATILITY must be positive, got %.3f", c.Agent.TargetVolatility)
	}
	if c.Agent.MaxGrossExposure <= 0 {
		return fmt.Errorf("AGENT_MAX_GROSS_EXPOSURE must be positive, got %.3f", c.Agent.MaxGrossExposure)
	}

	if c.Meeting.ConcurrencyLimit <= 0 {
		return fmt.Errorf("MEETING_CONCURRENCY_LIMIT must be positive, got %d", c.Meeting.ConcurrencyLimit)
	}
	if c.Meeting.TimeoutSeconds <= 0 {
		return fmt.Errorf("MEETING_TIMEOUT_SECONDS must be positive, got %d", c.Meeting.TimeoutSeconds)
	}
	if c.Meeting.NewsLimit <= 0 {
		return fmt.Errorf("MEETING_NEWS_LIMIT must be positive, got %d", c.Meeting.NewsLimit)
	}

	if c.Backtest.PeriodsPerYear < 0 {
		return fmt.Errorf("BACKTEST_PERIODS_PER_YEAR must not be negative, got %d", c.Backtest.PeriodsPerYear)
	}

	return nil
}

// HasDatabase returns true if database configuration is available
func (c *Config) HasDatabase() bool {
	return c.Database.URL != ""
}

// HasAlpaca returns true if Alpaca configuration is available
func (c *Config) HasAlpaca() bool {
	return c.Alpaca.APIKey != "" && c.Alpaca.APISecret != ""
}

// HasAlphaVantage returns true if Alpha Vantage configuration is available
func (c *Config) HasAlphaVantage() bool {
	return c.AlphaVantage.APIKey != ""
}

// HasNewsAPI returns true if NewsAPI configuration is available
func (c *Config) HasNewsAPI() bool {
	return c.NewsAPI.APIKey != ""
}

func getEnvString(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatRange(key string, defaultValue, minVal, maxVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil && parsed >= minVal && parsed <= maxVal {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatUnbounded(key string, defaultValue float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvIntSlice parses a comma-separated list of positive integers.
// A malformed entry rejects the whole value in favor of the default.
func getEnvIntSlice(key string, defaultValue []int) []int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parts := strings.Split(val, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		parsed, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || parsed <= 0 {
			return defaultValue
		}
		out = append(out, parsed)
	}
	return out
}

// NewTestConfig creates a Config with default values for testing
func NewTestConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			URL: "",
		},
		Alpaca: AlpacaConfig{
			APIKey:    "",
			APISecret: "",
			BaseURL:   "https://paper-api.alpaca.markets",
		},
		AlphaVantage: AlphaVantageConfig{
			APIKey: "",
		},
		NewsAPI: NewsAPIConfig{
			APIKey: "",
		},
		Indicator: IndicatorConfig{
			Windows: []int{5, 10, 20, 50, 100, 200},
		},
		Agent: AgentConfig{
			TargetVolatility:  0.3,
			MaxWeightPerAsset: 0.2,
			MaxSectorExposure: 0.5,
			MinConfidence:     0.1,
			MaxGrossExposure:  1.0,
		},
		Meeting: MeetingConfig{
			Interval:         "1d",
			NewsLimit:        20,
			ConcurrencyLimit: 4,
			TimeoutSeconds:   60,
		},
		Backtest: BacktestConfig{
			PeriodsPerYear: 0,
		},
		HTTP: HTTPConfig{
			Port:               8080,
			CORSAllowedOrigins: "*",
		},
	}
}
