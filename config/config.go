package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	Store       StoreConfig       `mapstructure:"store"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	RateLimit   RateLimitConfig   `mapstructure:"ratelimit"`
	Search      SearchConfig      `mapstructure:"search"`
	Recommender RecommenderConfig `mapstructure:"recommender"`
	Biometric   BiometricConfig   `mapstructure:"biometric"`
	Receipt     ReceiptConfig     `mapstructure:"receipt"`
	Tracker     TrackerConfig     `mapstructure:"tracker"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	Environment    string        `mapstructure:"environment"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
}

// StoreConfig holds key-value store configuration
type StoreConfig struct {
	Type      string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL  string        `mapstructure:"redis_url"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	TTL       time.Duration `mapstructure:"ttl"` // search result cache lifetime
}

// CatalogConfig points at optional catalog files. Empty paths use the embedded seed data.
type CatalogConfig struct {
	ProductsFile  string `mapstructure:"products_file"`
	MaterialsFile string `mapstructure:"materials_file"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// SearchConfig holds search tuning
type SearchConfig struct {
	FuzzyMaxDistance    int `mapstructure:"fuzzy_max_distance"`
	RecommendationLimit int `mapstructure:"recommendation_limit"`
	SuggestionLimit     int `mapstructure:"suggestion_limit"`
	ShortQueryLength    int `mapstructure:"short_query_length"`
}

// RecommenderConfig holds alternative recommender tuning
type RecommenderConfig struct {
	Limit             int `mapstructure:"limit"`
	MinKeywordMatches int `mapstructure:"min_keyword_matches"`
}

// BiometricConfig holds typing-rhythm verifier tuning
type BiometricConfig struct {
	MinIntervals      int     `mapstructure:"min_intervals"`
	EnrollmentSamples int     `mapstructure:"enrollment_samples"`
	Tolerance         float64 `mapstructure:"tolerance"`
	MaxFailures       int     `mapstructure:"max_failures"`
}

// ReceiptConfig holds synthetic receipt settings
type ReceiptConfig struct {
	StageDelayScale float64       `mapstructure:"stage_delay_scale"`
	TTL             time.Duration `mapstructure:"ttl"`
}

// TrackerConfig holds sustainability tracker defaults
type TrackerConfig struct {
	DefaultEcoScore int     `mapstructure:"default_eco_score"`
	MonthlyGoal     float64 `mapstructure:"monthly_goal"`
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/ecomart/")

	// Environment variable settings: ECOMART_SERVER_PORT -> server.port
	v.SetEnvPrefix("ECOMART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env if present. Existing environment variables win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat .env: %w", err)
	}
	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.request_timeout", "30s")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Store defaults
	v.SetDefault("store.type", "memory")
	v.SetDefault("store.redis_url", "")
	v.SetDefault("store.key_prefix", "ecomart")
	v.SetDefault("store.ttl", "1h")

	// Catalog defaults
	v.SetDefault("catalog.products_file", "")
	v.SetDefault("catalog.materials_file", "")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)

	// Engine defaults
	v.SetDefault("search.fuzzy_max_distance", 2)
	v.SetDefault("search.recommendation_limit", 3)
	v.SetDefault("search.suggestion_limit", 7)
	v.SetDefault("search.short_query_length", 2)
	v.SetDefault("recommender.limit", 3)
	v.SetDefault("recommender.min_keyword_matches", 2)
	v.SetDefault("biometric.min_intervals", 5)
	v.SetDefault("biometric.enrollment_samples", 3)
	v.SetDefault("biometric.tolerance", 0.3)
	v.SetDefault("biometric.max_failures", 3)
	v.SetDefault("receipt.stage_delay_scale", 1.0)
	v.SetDefault("receipt.ttl", "0s")
	v.SetDefault("tracker.default_eco_score", 75)
	v.SetDefault("tracker.monthly_goal", 50.0)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Store.Type != "memory" && config.Store.Type != "redis" {
		return fmt.Errorf("store type must be 'memory' or 'redis', got: %s", config.Store.Type)
	}

	if config.Store.Type == "redis" && config.Store.RedisURL == "" {
		return fmt.Errorf("redis URL is required when store type is 'redis'")
	}

	switch config.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log format must be 'json' or 'console', got: %s", config.Log.Format)
	}

	// Checked in order so the first invalid key is always the one reported
	positive := []struct {
		key   string
		value int
	}{
		{"ratelimit.per_ip", config.RateLimit.PerIP},
		{"ratelimit.burst", config.RateLimit.Burst},
		{"search.fuzzy_max_distance", config.Search.FuzzyMaxDistance},
		{"search.recommendation_limit", config.Search.RecommendationLimit},
		{"search.suggestion_limit", config.Search.SuggestionLimit},
		{"search.short_query_length", config.Search.ShortQueryLength},
		{"recommender.limit", config.Recommender.Limit},
		{"recommender.min_keyword_matches", config.Recommender.MinKeywordMatches},
		{"biometric.min_intervals", config.Biometric.MinIntervals},
		{"biometric.enrollment_samples", config.Biometric.EnrollmentSamples},
		{"biometric.max_failures", config.Biometric.MaxFailures},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got: %d", p.key, p.value)
		}
	}

	if config.Biometric.Tolerance <= 0 || config.Biometric.Tolerance > 1 {
		return fmt.Errorf("biometric tolerance must be in (0, 1], got: %v", config.Biometric.Tolerance)
	}

	if config.Receipt.StageDelayScale < 0 {
		return fmt.Errorf("receipt stage delay scale must not be negative, got: %v", config.Receipt.StageDelayScale)
	}

	if config.Tracker.DefaultEcoScore < 1 || config.Tracker.DefaultEcoScore > 100 {
		return fmt.Errorf("tracker default eco score must be within 1-100, got: %d", config.Tracker.DefaultEcoScore)
	}

	return nil
}
