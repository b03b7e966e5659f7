package export

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/vevoretail/orderpulse/internal/config"
)

var Module = fx.Module("export",
	fx.Provide(provideWriters),
	fx.Provide(NewRunner),
)

func provideWriters(cfg config.Config, log *zap.Logger) *Writers {
	return NewWriters(cfg.Pipeline.OutputDir, log)
}
