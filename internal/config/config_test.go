package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RetryAttempts != 3 {
		t.Errorf("RetryAttempts = %d, want 3", cfg.RetryAttempts)
	}
	if cfg.RetryDelay() != time.Second {
		t.Errorf("RetryDelay = %v, want 1s", cfg.RetryDelay())
	}
	if cfg.DeadlineScanInterval() != 5*time.Minute {
		t.Errorf("DeadlineScanInterval = %v, want 5m", cfg.DeadlineScanInterval())
	}
	if cfg.AutoReadTimeout() != 5*time.Second {
		t.Errorf("AutoReadTimeout = %v, want 5s", cfg.AutoReadTimeout())
	}
	if cfg.APIPort != 8080 {
		t.Errorf("APIPort = %d, want 8080", cfg.APIPort)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
}

func TestLoad_SyntheticMode(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Synthetic() {
		t.Error("Synthetic() should be true when API_BASE_URL is unset")
	}

	t.Setenv("API_BASE_URL", "https://api.example.org")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Synthetic() {
		t.Error("Synthetic() should be false when API_BASE_URL is set")
	}

	t.Setenv("FORCE_SYNTHETIC", "true")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Synthetic() {
		t.Error("Synthetic() should be true when FORCE_SYNTHETIC is set")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.org")
	t.Setenv("RETRY_ATTEMPTS", "5")
	t.Setenv("RETRY_DELAY_MS", "250")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("API_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RetryAttempts != 5 {
		t.Errorf("RetryAttempts = %d, want 5", cfg.RetryAttempts)
	}
	if cfg.RetryDelay() != 250*time.Millisecond {
		t.Errorf("RetryDelay = %v, want 250ms", cfg.RetryDelay())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.APIPort != 9090 {
		t.Errorf("APIPort = %d, want 9090", cfg.APIPort)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero retry attempts", key: "RETRY_ATTEMPTS", value: "0"},
		{name: "negative retry delay", key: "RETRY_DELAY_MS", value: "-1"},
		{name: "zero auto read timeout", key: "AUTO_READ_TIMEOUT_MS", value: "0"},
		{name: "unknown token store", key: "TOKEN_STORE", value: "vault"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
