package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// GormConfig is shared by the server and the tests so timestamps are always UTC
func GormConfig(logger *zap.Logger) *gorm.Config {
	return &gorm.Config{
		Logger: NewGormLogger(logger, gormlogger.Warn, 200*time.Millisecond),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func ConnectDB(cfg DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.URL), GormConfig(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	DB = db
	logger.Info("connected to database")
	return db, nil
}
