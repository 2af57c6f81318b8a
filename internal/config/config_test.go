package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SAMPLE_INTERVAL_MS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default Port '8080', got '%s'", cfg.Port)
	}

	if cfg.HistoryDBPath != "feedback.sqlite" {
		t.Errorf("Expected default HistoryDBPath 'feedback.sqlite', got '%s'", cfg.HistoryDBPath)
	}

	if cfg.BaselineSessions != 5 {
		t.Errorf("Expected default BaselineSessions 5, got %d", cfg.BaselineSessions)
	}

	if cfg.DeepgramModel != "nova-2" {
		t.Errorf("Expected default DeepgramModel 'nova-2', got '%s'", cfg.DeepgramModel)
	}

	if cfg.DeepgramLanguage != "en" {
		t.Errorf("Expected default DeepgramLanguage 'en', got '%s'", cfg.DeepgramLanguage)
	}

	if cfg.SampleIntervalMs != 100 {
		t.Errorf("Expected default SampleIntervalMs 100, got %d", cfg.SampleIntervalMs)
	}

	if cfg.QualityWindowSize != 20 {
		t.Errorf("Expected default QualityWindowSize 20, got %d", cfg.QualityWindowSize)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default LogLevel 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.LogPretty {
		t.Error("Expected default LogPretty false, got true")
	}

	if !cfg.MetricsEnabled {
		t.Error("Expected default MetricsEnabled true, got false")
	}
}

func TestLoad_TranscriptionOptional(t *testing.T) {
	os.Unsetenv("DEEPGRAM_API_KEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.TranscriptionEnabled() {
		t.Error("Expected transcription disabled without DEEPGRAM_API_KEY")
	}

	os.Setenv("DEEPGRAM_API_KEY", "test-deepgram-key")
	defer os.Unsetenv("DEEPGRAM_API_KEY")

	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if !cfg.TranscriptionEnabled() {
		t.Error("Expected transcription enabled with DEEPGRAM_API_KEY set")
	}
}

func TestLoad_InvalidSampleInterval(t *testing.T) {
	os.Setenv("SAMPLE_INTERVAL_MS", "0")
	defer os.Unsetenv("SAMPLE_INTERVAL_MS")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for zero SAMPLE_INTERVAL_MS")
	}
}

func TestLoad_ResilienceDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.CircuitBreakerMaxFailures != 5 {
		t.Errorf("Expected default CircuitBreakerMaxFailures 5, got %d", cfg.CircuitBreakerMaxFailures)
	}

	if cfg.CircuitBreakerResetTimeout != 30 {
		t.Errorf("Expected default CircuitBreakerResetTimeout 30, got %d", cfg.CircuitBreakerResetTimeout)
	}

	if cfg.RetryMaxAttempts != 3 {
		t.Errorf("Expected default RetryMaxAttempts 3, got %d", cfg.RetryMaxAttempts)
	}

	if cfg.RetryInitialBackoff != 100 {
		t.Errorf("Expected default RetryInitialBackoff 100, got %d", cfg.RetryInitialBackoff)
	}
}

func TestLoadFromEnv_EnvironmentOnly(t *testing.T) {
	os.Setenv("PORT", "9090")
	os.Setenv("HISTORY_DB_PATH", "/var/lib/feedback/sessions.sqlite")
	defer os.Unsetenv("PORT")
	defer os.Unsetenv("HISTORY_DB_PATH")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected Port '9090' from environment, got '%s'", cfg.Port)
	}

	if cfg.HistoryDBPath != "/var/lib/feedback/sessions.sqlite" {
		t.Errorf("Expected HistoryDBPath from environment, got '%s'", cfg.HistoryDBPath)
	}

	// Unset variables still resolve to struct defaults
	if cfg.SampleIntervalMs != 100 {
		t.Errorf("Expected default SampleIntervalMs 100, got %d", cfg.SampleIntervalMs)
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_KEY", "test-value")
	defer os.Unsetenv("TEST_KEY")

	value := GetEnv("TEST_KEY", "default")
	if value != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", value)
	}

	value = GetEnv("NON_EXISTENT_KEY", "default")
	if value != "default" {
		t.Errorf("Expected 'default', got '%s'", value)
	}
}
