package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/meridian-specialty/underwriting-cli/internal/narrative"
	"github.com/meridian-specialty/underwriting-cli/internal/risk"
	"github.com/meridian-specialty/underwriting-cli/internal/store"
	"github.com/meridian-specialty/underwriting-cli/pkg/anthropic"
)

// openStore builds the assessment store for the configured driver and runs
// migrations. Caller owns Close.
func openStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite":
		st, err = store.NewSQLite(cfg.Store.SQLitePath)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}

	zap.L().Debug("store ready", zap.String("driver", cfg.Store.Driver))
	return st, nil
}

// newScorer builds the risk scorer with the configured reference year.
func newScorer() *risk.Scorer {
	return risk.NewScorer(cfg.Scoring.ReferenceYear)
}

// newGenerator builds the LLM narrative generator, or nil when no API key is
// configured; callers fall back to the template narrative.
func newGenerator() narrative.Generator {
	if cfg.Anthropic.Key == "" {
		return nil
	}
	client := anthropic.NewClient(cfg.Anthropic.Key)
	return narrative.NewModelGenerator(client, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens, cfg.Anthropic.RequestsPerMin)
}
