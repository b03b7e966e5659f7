// Package db opens the local cache database.
package db

import (
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vevoretail/orderpulse/internal/config"
)

var Module = fx.Module("db",
	fx.Provide(Open),
)

// Open opens (and creates, if needed) the sqlite cache database configured
// by the pipeline settings.
func Open(cfg config.Config) (*gorm.DB, error) {
	path := cfg.Pipeline.CachePath
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
}
