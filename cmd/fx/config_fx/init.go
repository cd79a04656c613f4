package config_fx

import (
	"go.uber.org/fx"

	"scaffold/internal/config"
	"scaffold/pkg/logger"
)

var Module = fx.Provide(config.Load, provideLogger)

func provideLogger(cfg *config.Config) logger.Logger {
	return logger.Init(logger.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
}
