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

// The invoices app runs only the eligibility leg of the pipeline and writes
// the candidate feed. It never creates invoices.
func main() {
	fromDate := flag.String("from-date", "", "start of the range (YYYY-MM-DD)")
	toDate := flag.String("to-date", "", "end of the range (YYYY-MM-DD, default today)")
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
		fx.Invoke(RunFeed),
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

func RunFeed(lc fx.Lifecycle, shutdowner fx.Shutdowner, runner *export.Runner, rng export.DateRange, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				code := 0
				if _, err := runner.RunInvoiceFeed(context.Background(), rng); err != nil {
					log.Error("invoice feed run failed", zap.Error(err))
					code = 1
				}
				_ = shutdowner.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
	})
}
