// Package service implements the freshness-aware ad-spend cache.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vevoretail/orderpulse/internal/adspend/domain"
	"github.com/vevoretail/orderpulse/internal/adspend/repository"
	"github.com/vevoretail/orderpulse/internal/clock"
)

// Cache answers per-day spend lookups, trusting the local store for settled
// days and refetching recent ones. Spend for a closed day does not change
// once the platform has settled it, so days older than the freshness
// threshold are served from cache without an API call.
type Cache struct {
	store     *repository.Store
	providers map[domain.Platform]domain.Provider
	clock     clock.Clock
	freshDays int
	log       *zap.Logger
}

func NewCache(store *repository.Store, providers []domain.Provider, clk clock.Clock, freshDays int, log *zap.Logger) *Cache {
	byPlatform := make(map[domain.Platform]domain.Provider, len(providers))
	for _, p := range providers {
		byPlatform[p.Platform()] = p
	}
	return &Cache{
		store:     store,
		providers: byPlatform,
		clock:     clk,
		freshDays: freshDays,
		log:       log.Named("adspend"),
	}
}

// settled reports whether a day is past the freshness threshold and its
// cached value can be trusted.
func (c *Cache) settled(day time.Time) bool {
	today := domain.Day(c.clock.Now())
	age := int(today.Sub(domain.Day(day)).Hours() / 24)
	return age > c.freshDays
}

// Get returns the spend record for one platform and day. Settled days hit
// the cache first; recent days always refetch and overwrite the cache entry.
// A day the platform reports nothing for yields an explicit zero record.
func (c *Cache) Get(ctx context.Context, platform domain.Platform, date time.Time) (domain.SpendRecord, error) {
	day := domain.Day(date)
	if c.settled(day) {
		if rec, ok := c.store.Get(ctx, platform, day); ok {
			return rec, nil
		}
	}

	provider, ok := c.providers[platform]
	if !ok {
		return domain.SpendRecord{}, fmt.Errorf("%w: %s", domain.ErrUnknownPlatform, platform)
	}
	records, err := provider.DailySpend(ctx, day, day)
	if err != nil {
		return domain.SpendRecord{}, fmt.Errorf("fetch %s spend for %s: %w", platform, day.Format("2006-01-02"), err)
	}

	rec := domain.SpendRecord{Date: day, Platform: platform, Amount: decimal.Zero}
	for _, r := range records {
		if domain.Day(r.Date).Equal(day) {
			rec = r
			break
		}
	}
	if err := c.store.Put(ctx, rec, c.clock.Now()); err != nil {
		c.log.Warn("cache write failed", zap.Error(err))
	}
	return rec, nil
}

// Range returns spend keyed by YYYY-MM-DD for every day in [from, to].
// Settled days are read from cache; the remaining days are fetched in one
// provider call per platform and written back. Days without reported spend
// are zero-valued, never interpolated.
func (c *Cache) Range(ctx context.Context, platform domain.Platform, from, to time.Time) (map[string]domain.SpendRecord, error) {
	provider, ok := c.providers[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPlatform, platform)
	}

	out := make(map[string]domain.SpendRecord)
	var fetchFrom, fetchTo time.Time

	for day := domain.Day(from); !day.After(domain.Day(to)); day = day.AddDate(0, 0, 1) {
		if c.settled(day) {
			if rec, ok := c.store.Get(ctx, platform, day); ok {
				out[day.Format("2006-01-02")] = rec
				continue
			}
		}
		if fetchFrom.IsZero() {
			fetchFrom = day
		}
		fetchTo = day
	}

	if fetchFrom.IsZero() {
		return out, nil
	}

	c.log.Info("fetching spend from provider",
		zap.String("platform", string(platform)),
		zap.String("from", fetchFrom.Format("2006-01-02")),
		zap.String("to", fetchTo.Format("2006-01-02")),
	)
	records, err := provider.DailySpend(ctx, fetchFrom, fetchTo)
	if err != nil {
		return nil, fmt.Errorf("fetch %s spend: %w", platform, err)
	}

	fetched := make(map[string]domain.SpendRecord, len(records))
	for _, rec := range records {
		fetched[domain.Day(rec.Date).Format("2006-01-02")] = rec
	}
	now := c.clock.Now()
	for day := fetchFrom; !day.After(fetchTo); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		if _, already := out[key]; already {
			continue
		}
		rec, ok := fetched[key]
		if !ok {
			rec = domain.SpendRecord{Date: day, Platform: platform, Amount: decimal.Zero}
		}
		out[key] = rec
		if err := c.store.Put(ctx, rec, now); err != nil {
			c.log.Warn("cache write failed", zap.String("date", key), zap.Error(err))
		}
	}
	return out, nil
}
