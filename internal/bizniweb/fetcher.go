package bizniweb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vevoretail/orderpulse/internal/order"
)

// PageFailure records one page that could not be fetched.
type PageFailure struct {
	Page int
	Err  error
}

// FetchResult carries everything a run collected plus an explicit account of
// what it missed, so callers can judge completeness programmatically.
type FetchResult struct {
	Orders        []order.Order
	PagesFetched  int
	PageFailures  []PageFailure
	SkippedOrders int
}

// Complete reports whether every page of the range was retrieved.
func (r FetchResult) Complete() bool {
	return len(r.PageFailures) == 0
}

// Fetcher drives the pagination loop over a PageSource. Mid-run page
// failures are recorded and skipped; only a failed first page or an
// authentication error aborts the run.
type Fetcher struct {
	source PageSource
	log    *zap.Logger
}

func NewFetcher(source PageSource, log *zap.Logger) *Fetcher {
	return &Fetcher{source: source, log: log.Named("fetcher")}
}

// FetchRange collects all order pages for the date range. Pages are fetched
// sequentially; after a transient failure the loop steps to the next page by
// index, which requires the total page count learned from an earlier page.
func (f *Fetcher) FetchRange(ctx context.Context, from, to time.Time) (FetchResult, error) {
	var result FetchResult

	page := 1
	cursor := ""
	totalPages := 0

	for {
		res, err := f.source.FetchPage(ctx, from, to, PageRequest{Cursor: cursor, Index: page})
		if err != nil {
			if page == 1 {
				return result, fmt.Errorf("first page unavailable: %w", err)
			}
			if errors.Is(err, ErrAuthentication) {
				return result, err
			}
			result.PageFailures = append(result.PageFailures, PageFailure{Page: page, Err: err})
			f.log.Warn("page fetch failed, continuing with next page",
				zap.Int("page", page),
				zap.Error(err),
			)
			if totalPages == 0 {
				// Without the page count there is no way to address
				// the page after the failed one.
				break
			}
			page++
			cursor = ""
			if page > totalPages {
				break
			}
			continue
		}

		result.Orders = append(result.Orders, res.Orders...)
		result.PagesFetched++
		result.SkippedOrders += res.Skipped
		if res.TotalPages > 0 {
			totalPages = res.TotalPages
		}

		f.log.Debug("fetched page",
			zap.Int("page", page),
			zap.Int("orders", len(res.Orders)),
			zap.Int("total_orders", len(result.Orders)),
		)

		if !res.HasNext {
			break
		}
		page++
		cursor = res.NextCursor
		if cursor == "" && totalPages == 0 {
			break
		}
	}

	if !result.Complete() {
		f.log.Warn("fetch finished with partial results",
			zap.Int("pages_fetched", result.PagesFetched),
			zap.Int("pages_failed", len(result.PageFailures)),
			zap.Int("orders", len(result.Orders)),
		)
	}
	return result, nil
}
