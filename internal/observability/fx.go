package observability

import (
	"go.uber.org/fx"

	"github.com/vevoretail/orderpulse/internal/config"
	"github.com/vevoretail/orderpulse/internal/observability/logger"
)

var Module = fx.Module("observability",
	fx.Provide(
		provideLoggerConfig,
		logger.New,
	),
)

func provideLoggerConfig(cfg config.Config) logger.Config {
	debug := cfg.Environment != "production"
	return logger.Config{
		ServiceName:         cfg.AppName,
		Environment:         cfg.Environment,
		Version:             cfg.AppVersion,
		Level:               cfg.LogLevel,
		Format:              cfg.LogFormat,
		IncludeCaller:       true,
		IncludeStackOnError: debug,
	}
}
