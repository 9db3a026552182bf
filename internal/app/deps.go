package app

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"

	"textchunk/internal/config"
	"textchunk/internal/logger"
	"textchunk/token"
)

// Deps bundles common runtime dependencies for the CLI.
type Deps struct {
	Config  config.Config
	Log     *slog.Logger
	Counter token.Counter
}

// Build loads env, config, and the configured counter. overrides run after
// the environment is read and before validation, letting flags win.
func Build(overrides ...func(*config.Config)) (Deps, error) {
	// A .env file is optional for a CLI; absence is not an error.
	_ = godotenv.Load()
	cfg := config.Load()
	for _, o := range overrides {
		o(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Deps{}, err
	}
	log := logger.New(cfg.LogLevel)

	counter, err := buildCounter(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize counter: %w", err)
	}
	return Deps{
		Config:  cfg,
		Log:     log,
		Counter: counter,
	}, nil
}

func buildCounter(cfg config.Config, log *slog.Logger) (token.Counter, error) {
	switch cfg.Counter {
	case "tiktoken":
		c, err := token.NewTiktoken(cfg.Encoding)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tiktoken: %w", err)
		}
		log.Debug("using tiktoken counter", "encoding", cfg.Encoding)
		return c, nil
	case "words":
		log.Debug("using word counter")
		return token.Words{}, nil
	case "runes":
		log.Debug("using rune counter")
		return token.Runes{}, nil
	case "estimate":
		log.Debug("using heuristic counter")
		return token.Estimate{}, nil
	default:
		return nil, fmt.Errorf("invalid COUNTER: %s (valid options: tiktoken, words, runes, estimate)", cfg.Counter)
	}
}
