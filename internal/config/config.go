package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Config holds chunkctl runtime configuration. Flags override these values
// before validation.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// Chunking
	ChunkSize int     `env:"CHUNK_SIZE" envDefault:"512" validate:"gt=0"`
	Overlap   float64 `env:"CHUNK_OVERLAP" envDefault:"0" validate:"gte=0"`

	// Counter selection
	Counter  string `env:"COUNTER" envDefault:"tiktoken" validate:"oneof=tiktoken words runes estimate"`
	Encoding string `env:"TIKTOKEN_ENCODING" envDefault:"cl100k_base" validate:"required"`

	// Memoization
	CacheSize int `env:"CACHE_SIZE" envDefault:"0" validate:"gte=0"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

// Validate checks the configuration after flag overrides are applied.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
