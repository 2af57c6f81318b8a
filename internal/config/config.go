package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the feedback engine service
type Config struct {
	// Server configuration
	Port string `envconfig:"PORT" default:"8080"`

	// Session history store (SQLite). Baselines are computed from the
	// sessions recorded here.
	HistoryDBPath    string `envconfig:"HISTORY_DB_PATH" default:"feedback.sqlite"`
	BaselineSessions int    `envconfig:"BASELINE_SESSIONS" default:"5"` // Rolling window for baseline averages

	// Deepgram STT API configuration. Optional: when the key is empty the
	// /v1/transcribe endpoint reports unavailable and scoring runs audio-only.
	DeepgramAPIKey   string `envconfig:"DEEPGRAM_API_KEY" default:""`
	DeepgramModel    string `envconfig:"DEEPGRAM_MODEL" default:"nova-2"` // nova-2, enhanced, base
	DeepgramLanguage string `envconfig:"DEEPGRAM_LANGUAGE" default:"en"`  // Language code (en, es, fr, etc.)

	// Lexicon overrides (YAML). Empty means built-in phrase lists only.
	LexiconPath string `envconfig:"LEXICON_PATH" default:""`

	// Live level stream configuration
	SampleIntervalMs    int `envconfig:"SAMPLE_INTERVAL_MS" default:"100"`    // Sampler cadence (10 Hz)
	QualityWindowSize   int `envconfig:"QUALITY_WINDOW_SIZE" default:"20"`    // Trailing samples inspected per quality check
	CalibrationWarmupMs int `envconfig:"CALIBRATION_WARMUP_MS" default:"500"` // Warm-up before noise floor calibration

	// Resilience configuration for the transcription collaborator
	CircuitBreakerMaxFailures  int `envconfig:"CIRCUIT_BREAKER_MAX_FAILURES" default:"5"`   // Failures before opening circuit
	CircuitBreakerResetTimeout int `envconfig:"CIRCUIT_BREAKER_RESET_TIMEOUT" default:"30"` // Seconds before attempting recovery
	RetryMaxAttempts           int `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`             // Maximum retry attempts
	RetryInitialBackoff        int `envconfig:"RETRY_INITIAL_BACKOFF" default:"100"`        // Initial backoff in milliseconds

	// Observability configuration
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`       // Log level: debug, info, warn, error
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"false"`     // Pretty print logs (for development)
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"` // Enable Prometheus metrics
}

// Load reads configuration from environment variables
// It first attempts to load from .env file if it exists, then from environment
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.SampleIntervalMs <= 0 {
		return nil, fmt.Errorf("SAMPLE_INTERVAL_MS must be positive, got %d", cfg.SampleIntervalMs)
	}
	if cfg.BaselineSessions <= 0 {
		return nil, fmt.Errorf("BASELINE_SESSIONS must be positive, got %d", cfg.BaselineSessions)
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration directly from environment variables
// without attempting to load .env file (useful for containerized deployments)
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// TranscriptionEnabled reports whether the Deepgram collaborator is configured
func (c *Config) TranscriptionEnabled() bool {
	return c.DeepgramAPIKey != ""
}

// GetEnv returns the value of an environment variable or a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
