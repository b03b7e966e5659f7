package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vevoretail/orderpulse/internal/adspend/domain"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	store, err := NewStore(db, zap.NewNop())
	require.NoError(t, err)
	return store, db
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	rec := domain.SpendRecord{
		Date:     day,
		Platform: domain.PlatformGoogleAds,
		Amount:   decimal.RequireFromString("42.50"),
		Currency: "EUR",
	}
	require.NoError(t, store.Put(ctx, rec, time.Now()))

	got, ok := store.Get(ctx, domain.PlatformGoogleAds, day)
	require.True(t, ok)
	assert.True(t, got.Amount.Equal(rec.Amount))
	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, day, got.Date)
}

func TestStoreMissingRowIsMiss(t *testing.T) {
	store, _ := newTestStore(t)
	_, ok := store.Get(context.Background(), domain.PlatformFacebook, time.Now())
	assert.False(t, ok)
}

func TestStorePutOverwrites(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	rec := domain.SpendRecord{Date: day, Platform: domain.PlatformGoogleAds, Amount: decimal.NewFromInt(10), Currency: "EUR"}
	require.NoError(t, store.Put(ctx, rec, time.Now()))
	rec.Amount = decimal.NewFromInt(12)
	require.NoError(t, store.Put(ctx, rec, time.Now()))

	got, ok := store.Get(ctx, domain.PlatformGoogleAds, day)
	require.True(t, ok)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(12)))
}

func TestStorePlatformsAreIsolated(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Put(ctx, domain.SpendRecord{
		Date: day, Platform: domain.PlatformGoogleAds, Amount: decimal.NewFromInt(5),
	}, time.Now()))

	_, ok := store.Get(ctx, domain.PlatformFacebook, day)
	assert.False(t, ok)
}

func TestStoreCorruptRowIsMiss(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, db.Exec(
		"INSERT INTO ad_spend_cache (platform, date, amount, currency, fetched_at) VALUES (?, ?, ?, ?, ?)",
		string(domain.PlatformGoogleAds), "2024-01-10", "not-a-number", "EUR", time.Now(),
	).Error)

	_, ok := store.Get(ctx, domain.PlatformGoogleAds, day)
	assert.False(t, ok)
}
