// Package providers contains dependency injection providers for the recommender.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/smartlife/recommender/internal/config"
	"github.com/smartlife/recommender/internal/logger"
	"github.com/smartlife/recommender/internal/validation"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	catalogSource := cfg.Catalog.Path
	if catalogSource == "" {
		catalogSource = "embedded"
	}
	log.Info("Starting Smart Life Recommender",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"assets_dir", cfg.Assets.Dir,
		"catalog", catalogSource,
	)

	return log, nil
}

// ProvideValidator provides the shared struct validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
