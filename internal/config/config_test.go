package config

import (
	"log/slog"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "LOG_LEVEL", "SAVE_DIR", "NUM_SLOTS", "REDIS_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Environment != "development" {
		t.Errorf("Expected development, got %q", cfg.Environment)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("Expected info level, got %v", cfg.LogLevel)
	}
	if cfg.SaveDir != "./saves" {
		t.Errorf("Expected ./saves, got %q", cfg.SaveDir)
	}
	if cfg.NumSlots != 8 {
		t.Errorf("Expected 8 slots, got %d", cfg.NumSlots)
	}
	if cfg.RedisURL != "" {
		t.Errorf("Expected empty Redis URL, got %q", cfg.RedisURL)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SAVE_DIR", "/var/lib/lore/saves")
	t.Setenv("NUM_SLOTS", "4")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg := Load()

	if cfg.Environment != "production" {
		t.Errorf("Expected production, got %q", cfg.Environment)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("Expected debug level, got %v", cfg.LogLevel)
	}
	if cfg.SaveDir != "/var/lib/lore/saves" {
		t.Errorf("Expected /var/lib/lore/saves, got %q", cfg.SaveDir)
	}
	if cfg.NumSlots != 4 {
		t.Errorf("Expected 4 slots, got %d", cfg.NumSlots)
	}
	if cfg.RedisURL != "redis://localhost:6379" {
		t.Errorf("Expected redis URL, got %q", cfg.RedisURL)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}

	for _, tc := range tests {
		if got := parseLogLevel(tc.input); got != tc.expected {
			t.Errorf("parseLogLevel(%q) = %v, expected %v", tc.input, got, tc.expected)
		}
	}
}

func TestGetEnvInt_RejectsBadValues(t *testing.T) {
	t.Setenv("NUM_SLOTS", "not-a-number")
	if got := getEnvInt("NUM_SLOTS", 8); got != 8 {
		t.Errorf("Expected fallback 8, got %d", got)
	}

	t.Setenv("NUM_SLOTS", "-2")
	if got := getEnvInt("NUM_SLOTS", 8); got != 8 {
		t.Errorf("Expected fallback 8 for non-positive input, got %d", got)
	}
}
