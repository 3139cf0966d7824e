package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Common
	Environment string
	LogLevel    string

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Services
	Analysis AnalysisConfig
	Publish  PublishConfig
	API      APIConfig
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// AnalysisConfig holds analysis engine configuration
type AnalysisConfig struct {
	DataSource       string   // "csv" or "postgres" (default: "csv")
	DataDir          string   // directory of <SYMBOL>.csv files for the csv source
	OutputDir        string   // export directory
	Benchmark        string   // benchmark symbol; empty disables relative metrics
	Symbols          []string // default universe for batch runs
	RulesFile        string   // JSON attention rule set; empty uses the built-in rules
	Workers          int
	RegimeLookback   int
	ClusterThreshold float64
	Lookforward      int
	RelativeWindow   int
	Timeout          time.Duration // per batch run
}

// PublishConfig holds result publishing configuration
type PublishConfig struct {
	Enabled   bool
	Stream    string
	LatestTTL time.Duration
	MaxLen    int64
}

// APIConfig holds REST API configuration
type APIConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	RateLimitRPS    int // per client IP; zero disables limiting
}

// Load loads configuration from environment variables
// It automatically loads .env file if it exists in the current directory or parent directories
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Database:        getEnv("DB_NAME", "equity_signals"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnvAsInt("REDIS_PORT", 6379),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
		},
		Analysis: AnalysisConfig{
			DataSource:       getEnv("ANALYSIS_DATA_SOURCE", "csv"),
			DataDir:          getEnv("ANALYSIS_DATA_DIR", "data"),
			OutputDir:        getEnv("ANALYSIS_OUTPUT_DIR", "output"),
			Benchmark:        getEnv("ANALYSIS_BENCHMARK", "^GSPTSE"),
			Symbols:          getEnvAsStringSlice("ANALYSIS_SYMBOLS", []string{}),
			RulesFile:        getEnv("ANALYSIS_RULES_FILE", ""),
			Workers:          getEnvAsInt("ANALYSIS_WORKERS", 4),
			RegimeLookback:   getEnvAsInt("ANALYSIS_REGIME_LOOKBACK", 20),
			ClusterThreshold: getEnvAsFloat("ANALYSIS_CLUSTER_THRESHOLD", 1.5),
			Lookforward:      getEnvAsInt("ANALYSIS_LOOKFORWARD", 1),
			RelativeWindow:   getEnvAsInt("ANALYSIS_RELATIVE_WINDOW", 20),
			Timeout:          getEnvAsDuration("ANALYSIS_TIMEOUT", 5*time.Minute),
		},
		Publish: PublishConfig{
			Enabled:   getEnvAsBool("PUBLISH_ENABLED", false),
			Stream:    getEnv("PUBLISH_STREAM", "analysis.results"),
			LatestTTL: getEnvAsDuration("PUBLISH_LATEST_TTL", 24*time.Hour),
			MaxLen:    int64(getEnvAsInt("PUBLISH_STREAM_MAXLEN", 10000)),
		},
		API: APIConfig{
			Port:            getEnvAsInt("API_PORT", 8090),
			ReadTimeout:     getEnvAsDuration("API_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("API_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("API_SHUTDOWN_TIMEOUT", 10*time.Second),
			AllowedOrigins:  getEnvAsStringSlice("API_ALLOWED_ORIGINS", []string{"*"}),
			RateLimitRPS:    getEnvAsInt("API_RATE_LIMIT_RPS", 20),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Analysis.DataSource {
	case "csv":
		if c.Analysis.DataDir == "" {
			return fmt.Errorf("ANALYSIS_DATA_DIR is required for the csv data source")
		}
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required for the postgres data source")
		}
	default:
		return fmt.Errorf("ANALYSIS_DATA_SOURCE must be csv or postgres, got %q", c.Analysis.DataSource)
	}
	if c.Publish.Enabled && c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required when publishing is enabled")
	}
	if c.Analysis.Workers <= 0 {
		return fmt.Errorf("ANALYSIS_WORKERS must be positive")
	}
	if c.Analysis.RegimeLookback <= 0 || c.Analysis.RelativeWindow <= 0 || c.Analysis.Lookforward <= 0 {
		return fmt.Errorf("analysis windows must be positive")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Split by comma and trim spaces
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
