// Package repository persists settled ad-spend days in the local cache
// database.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vevoretail/orderpulse/internal/adspend/domain"
)

// cachedSpend is the on-disk cache row, keyed by (platform, date).
type cachedSpend struct {
	Platform  string    `gorm:"primaryKey;size:32"`
	Date      string    `gorm:"primaryKey;size:10"` // YYYY-MM-DD
	Amount    string    `gorm:"not null"`
	Currency  string    `gorm:"size:8"`
	FetchedAt time.Time `gorm:"not null"`
}

func (cachedSpend) TableName() string { return "ad_spend_cache" }

// Store persists spend records in the local cache database.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStore(db *gorm.DB, log *zap.Logger) (*Store, error) {
	if err := db.AutoMigrate(&cachedSpend{}); err != nil {
		return nil, err
	}
	return &Store{db: db, log: log.Named("adspend.store")}, nil
}

// Get loads a cached record. Any unreadable or corrupt row counts as a miss,
// never as an error; the caller falls through to the fetch path.
func (s *Store) Get(ctx context.Context, platform domain.Platform, day time.Time) (domain.SpendRecord, bool) {
	var row cachedSpend
	err := s.db.WithContext(ctx).
		Where("platform = ? AND date = ?", string(platform), domain.Day(day).Format("2006-01-02")).
		First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("cache read failed, treating as miss", zap.Error(err))
		}
		return domain.SpendRecord{}, false
	}

	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		s.log.Warn("corrupt cache row, treating as miss",
			zap.String("platform", row.Platform),
			zap.String("date", row.Date),
		)
		return domain.SpendRecord{}, false
	}
	date, err := time.Parse("2006-01-02", row.Date)
	if err != nil {
		return domain.SpendRecord{}, false
	}
	return domain.SpendRecord{
		Date:     date,
		Platform: domain.Platform(row.Platform),
		Amount:   amount,
		Currency: row.Currency,
	}, true
}

// Put upserts one record; an existing entry for the same (platform, date) is
// overwritten.
func (s *Store) Put(ctx context.Context, rec domain.SpendRecord, fetchedAt time.Time) error {
	row := cachedSpend{
		Platform:  string(rec.Platform),
		Date:      domain.Day(rec.Date).Format("2006-01-02"),
		Amount:    rec.Amount.String(),
		Currency:  rec.Currency,
		FetchedAt: fetchedAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "platform"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "currency", "fetched_at"}),
		}).
		Create(&row).Error
}
