package main

import (
	"context"
	"flag"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/vevoretail/orderpulse/internal/adspend"
	"github.com/vevoretail/orderpulse/internal/bizniweb"
	"github.com/vevoretail/orderpulse/internal/clock"
	"github.com/vevoretail/orderpulse/internal/config"
	"github.com/vevoretail/orderpulse/internal/export"
	"github.com/vevoretail/orderpulse/internal/invoicefeed"
	"github.com/vevoretail/orderpulse/internal/observability"
	"github.com/vevoretail/orderpulse/pkg/db"
)

func main() {
	fromDate := flag.String("from-date", "", "start of the export range (YYYY-MM-DD)")
	toDate := flag.String("to-date", "", "end of the export range (YYYY-MM-DD, default today)")
	flag.Parse()

	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		bizniweb.Module,
		adspend.Module,
		invoicefeed.Module,
		export.Module,

		fx.Provide(func(cfg config.Config, clk clock.Clock) (export.DateRange, error) {
			return export.ResolveRange(*fromDate, *toDate, cfg.Pipeline.RangeDays, clk)
		}),
		fx.Invoke(RunExport),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

// RunExport kicks off the pipeline once the fx graph is up and shuts the app
// down with the run's exit code when it finishes.
func RunExport(lc fx.Lifecycle, shutdowner fx.Shutdowner, runner *export.Runner, rng export.DateRange, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				code := 0
				if _, err := runner.Run(context.Background(), rng); err != nil {
					log.Error("export run failed", zap.Error(err))
					code = 1
				}
				_ = shutdowner.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
	})
}
