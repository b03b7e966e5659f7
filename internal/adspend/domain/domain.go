// Package domain defines the ad-spend model shared by the cache service,
// the local store, and the platform providers.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Platform identifies an advertising provider.
type Platform string

const (
	PlatformGoogleAds Platform = "google_ads"
	PlatformFacebook  Platform = "facebook"
)

// SpendRecord is one day of spend on one platform.
type SpendRecord struct {
	Date     time.Time
	Platform Platform
	Amount   decimal.Decimal
	Currency string
}

// Provider fetches a daily spend series from an ad platform. Implementations
// receive an already-authorized HTTP capability; token acquisition lives
// outside the pipeline.
type Provider interface {
	Platform() Platform
	DailySpend(ctx context.Context, from, to time.Time) ([]SpendRecord, error)
}

var (
	ErrUnknownPlatform = errors.New("unknown_platform")
	ErrNotConfigured   = errors.New("provider_not_configured")
)

// Day truncates t to its calendar day in UTC, the cache key granularity.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
