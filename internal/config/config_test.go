package config

import (
	"os"
	"strings"
	"testing"
)

func clearChunkEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LOG_LEVEL", "CHUNK_SIZE", "CHUNK_OVERLAP", "COUNTER", "TIKTOKEN_ENCODING", "CACHE_SIZE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearChunkEnv(t)

	cfg := Load()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"LogLevel", cfg.LogLevel, "info"},
		{"ChunkSize", cfg.ChunkSize, 512},
		{"Overlap", cfg.Overlap, 0.0},
		{"Counter", cfg.Counter, "tiktoken"},
		{"Encoding", cfg.Encoding, "cl100k_base"},
		{"CacheSize", cfg.CacheSize, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s=%v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearChunkEnv(t)
	t.Setenv("CHUNK_SIZE", "128")
	t.Setenv("CHUNK_OVERLAP", "0.25")
	t.Setenv("COUNTER", "words")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.ChunkSize != 128 {
		t.Errorf("expected chunk size 128, got %d", cfg.ChunkSize)
	}
	if cfg.Overlap != 0.25 {
		t.Errorf("expected overlap 0.25, got %v", cfg.Overlap)
	}
	if cfg.Counter != "words" {
		t.Errorf("expected counter 'words', got %s", cfg.Counter)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected config to validate, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	clearChunkEnv(t)
	cfg := Load()

	cfg.ChunkSize = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero chunk size")
	}

	cfg = Load()
	cfg.Counter = "syllables"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown counter")
	}
	if !strings.Contains(err.Error(), "Counter") {
		t.Errorf("expected the error to name the Counter field, got %v", err)
	}

	cfg = Load()
	cfg.Overlap = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative overlap")
	}
}
