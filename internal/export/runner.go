// Package export orchestrates one pipeline run: fetch, filter, flatten,
// aggregate, merge with ad spend, and write artifacts.
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	adsdomain "github.com/vevoretail/orderpulse/internal/adspend/domain"
	adsservice "github.com/vevoretail/orderpulse/internal/adspend/service"
	"github.com/vevoretail/orderpulse/internal/aggregate"
	"github.com/vevoretail/orderpulse/internal/bizniweb"
	"github.com/vevoretail/orderpulse/internal/config"
	"github.com/vevoretail/orderpulse/internal/flatten"
	"github.com/vevoretail/orderpulse/internal/invoicefeed"
	"github.com/vevoretail/orderpulse/internal/order"
	"github.com/vevoretail/orderpulse/internal/report"
)

// DateRange is the inclusive day range of one run.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Summary is the completeness account of one run. PagesFailed greater than
// zero means the artifacts were produced from partial data.
type Summary struct {
	RunID string
	Range DateRange

	PagesFetched  int
	PagesFailed   int
	OrdersKept    int
	OrdersDropped int // cancelled
	OrdersSkipped int // data-shape failures upstream
	Rows          int
	Candidates    int

	Artifacts []string
}

type Params struct {
	fx.In

	Fetcher *bizniweb.Fetcher
	Spend   *adsservice.Cache
	Matcher *invoicefeed.Matcher
	Writers *Writers
	GenID   *snowflake.Node
	Config  config.Config
	Log     *zap.Logger
}

// Runner wires the pipeline stages together. Stages run sequentially; the
// aggregator is the only mutable state and is local to a run.
type Runner struct {
	fetcher *bizniweb.Fetcher
	spend   *adsservice.Cache
	matcher *invoicefeed.Matcher
	writers *Writers
	genID   *snowflake.Node
	cfg     config.Config
	log     *zap.Logger
}

func NewRunner(p Params) *Runner {
	return &Runner{
		fetcher: p.Fetcher,
		spend:   p.Spend,
		matcher: p.Matcher,
		writers: p.Writers,
		genID:   p.GenID,
		cfg:     p.Config,
		log:     p.Log.Named("export"),
	}
}

// Run executes the pipeline for the date range and writes all artifacts the
// retrieved data allows. It fails only on terminal fetch errors or on
// artifact write failures; partial upstream data still produces output.
func (r *Runner) Run(ctx context.Context, rng DateRange) (Summary, error) {
	if rng.To.Before(rng.From) {
		return Summary{}, fmt.Errorf("invalid date range: %s after %s",
			rng.From.Format("2006-01-02"), rng.To.Format("2006-01-02"))
	}

	summary := Summary{
		RunID: r.genID.Generate().String(),
		Range: rng,
	}
	log := r.log.With(
		zap.String("run_id", summary.RunID),
		zap.String("from", rng.From.Format("2006-01-02")),
		zap.String("to", rng.To.Format("2006-01-02")),
	)
	log.Info("starting export run")

	result, err := r.fetcher.FetchRange(ctx, rng.From, rng.To)
	if err != nil {
		return summary, fmt.Errorf("fetch orders: %w", err)
	}
	summary.PagesFetched = result.PagesFetched
	summary.PagesFailed = len(result.PageFailures)
	summary.OrdersSkipped = result.SkippedOrders

	kept, cancelled := order.Partition(result.Orders, order.NotCancelled)
	summary.OrdersKept = len(kept)
	summary.OrdersDropped = cancelled
	if cancelled > 0 {
		log.Info("filtered cancelled orders", zap.Int("count", cancelled))
	}

	rows := flatten.FlattenAll(kept)
	summary.Rows = len(rows)

	acc := aggregate.New()
	acc.AccumulateAll(rows)
	snap := acc.Snapshot()

	spend := r.fetchSpend(ctx, rng, log)
	days := report.Merge(snap.ByDate, spend)

	var zeroItem []order.Order
	for _, o := range kept {
		if len(o.Items) == 0 {
			zeroItem = append(zeroItem, o)
		}
	}

	writes := []func() (string, error){
		func() (string, error) { return r.writers.WriteItemExport(rows, zeroItem, rng.From, rng.To) },
		func() (string, error) { return r.writers.WriteDateProductAggregate(snap.ByDateProduct, rng.From, rng.To) },
		func() (string, error) { return r.writers.WriteDateAggregate(snap.ByDate, rng.From, rng.To) },
		func() (string, error) { return r.writers.WriteProductAggregate(snap.ByProduct, rng.From, rng.To) },
		func() (string, error) { return r.writers.WriteDailySummary(days, rng.From, rng.To) },
	}
	for _, write := range writes {
		path, err := write()
		if err != nil {
			return summary, fmt.Errorf("write artifact: %w", err)
		}
		summary.Artifacts = append(summary.Artifacts, path)
	}

	if r.cfg.Pipeline.WriteHTML {
		html, err := report.RenderHTML(days, rng.From, rng.To, summary.RunID)
		if err != nil {
			return summary, err
		}
		path, err := r.writers.WriteHTMLReport(html, rng.From, rng.To)
		if err != nil {
			return summary, fmt.Errorf("write report: %w", err)
		}
		summary.Artifacts = append(summary.Artifacts, path)
	}

	candidates := r.matcher.Select(kept, rng.From, rng.To)
	summary.Candidates = len(candidates)
	path, err := r.writers.WriteInvoiceCandidates(candidates, rng.From, rng.To)
	if err != nil {
		return summary, fmt.Errorf("write candidates: %w", err)
	}
	summary.Artifacts = append(summary.Artifacts, path)

	log.Info("export run complete",
		zap.Int("pages_fetched", summary.PagesFetched),
		zap.Int("pages_failed", summary.PagesFailed),
		zap.Int("orders", summary.OrdersKept),
		zap.Int("orders_cancelled", summary.OrdersDropped),
		zap.Int("orders_skipped", summary.OrdersSkipped),
		zap.Int("rows", summary.Rows),
		zap.Int("invoice_candidates", summary.Candidates),
		zap.Strings("artifacts", summary.Artifacts),
	)
	return summary, nil
}

// RunInvoiceFeed executes only the invoice-eligibility leg: fetch, filter,
// select, write the candidate feed. It never touches the aggregation path.
func (r *Runner) RunInvoiceFeed(ctx context.Context, rng DateRange) (Summary, error) {
	if rng.To.Before(rng.From) {
		return Summary{}, fmt.Errorf("invalid date range: %s after %s",
			rng.From.Format("2006-01-02"), rng.To.Format("2006-01-02"))
	}

	summary := Summary{
		RunID: r.genID.Generate().String(),
		Range: rng,
	}
	log := r.log.With(
		zap.String("run_id", summary.RunID),
		zap.String("from", rng.From.Format("2006-01-02")),
		zap.String("to", rng.To.Format("2006-01-02")),
	)
	log.Info("starting invoice feed run")

	result, err := r.fetcher.FetchRange(ctx, rng.From, rng.To)
	if err != nil {
		return summary, fmt.Errorf("fetch orders: %w", err)
	}
	summary.PagesFetched = result.PagesFetched
	summary.PagesFailed = len(result.PageFailures)
	summary.OrdersSkipped = result.SkippedOrders

	kept, cancelled := order.Partition(result.Orders, order.NotCancelled)
	summary.OrdersKept = len(kept)
	summary.OrdersDropped = cancelled

	candidates := r.matcher.Select(kept, rng.From, rng.To)
	summary.Candidates = len(candidates)
	path, err := r.writers.WriteInvoiceCandidates(candidates, rng.From, rng.To)
	if err != nil {
		return summary, fmt.Errorf("write candidates: %w", err)
	}
	summary.Artifacts = append(summary.Artifacts, path)

	log.Info("invoice feed run complete",
		zap.Int("pages_fetched", summary.PagesFetched),
		zap.Int("pages_failed", summary.PagesFailed),
		zap.Int("orders", summary.OrdersKept),
		zap.Int("invoice_candidates", summary.Candidates),
		zap.String("artifact", path),
	)
	return summary, nil
}

// fetchSpend pulls the per-day series from every configured platform. Spend
// is advisory for the summary: a failing or unconfigured provider logs and
// contributes nothing, and the merge reports those days with zero spend.
func (r *Runner) fetchSpend(ctx context.Context, rng DateRange, log *zap.Logger) map[adsdomain.Platform]map[string]adsdomain.SpendRecord {
	spend := make(map[adsdomain.Platform]map[string]adsdomain.SpendRecord)
	for _, platform := range []adsdomain.Platform{adsdomain.PlatformGoogleAds, adsdomain.PlatformFacebook} {
		series, err := r.spend.Range(ctx, platform, rng.From, rng.To)
		if err != nil {
			if errors.Is(err, adsdomain.ErrNotConfigured) {
				log.Info("ad platform not configured, reporting zero spend",
					zap.String("platform", string(platform)))
			} else {
				log.Warn("ad spend unavailable, reporting zero spend",
					zap.String("platform", string(platform)),
					zap.Error(err))
			}
			continue
		}
		spend[platform] = series
	}
	return spend
}
