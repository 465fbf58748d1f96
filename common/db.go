package common

import (
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDb opens the configured sqlite database. A missing or unreachable
// database is not fatal: it returns nil and the caller degrades to the
// in-memory fallback store.
func ConnectDb(cfg *Config, log *zap.Logger) *gorm.DB {
	if cfg.DatabaseFile == "" {
		log.Warn("DATABASE_FILE not set, no live store available")
		return nil
	}

	logLevel := logger.Warn
	if cfg.IsDev() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseFile), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logLevel),
	})
	if err != nil {
		log.Warn("failed to open sqlite db", zap.String("file", cfg.DatabaseFile), zap.Error(err))
		return nil
	}

	log.Info("opened sqlite db", zap.String("file", cfg.DatabaseFile))
	return db
}
