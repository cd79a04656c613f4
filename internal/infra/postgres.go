package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"scaffold/internal/config"
	"scaffold/internal/models/db_models"
	"scaffold/pkg/logger"
)

func InitPostgresql(cfg *config.Config, log logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := db.AutoMigrate(&db_models.Account{}); err != nil {
		return nil, fmt.Errorf("migrate accounts: %w", err)
	}

	log.Info("postgres connected")
	return db, nil
}

func ClosePostgresql(db *gorm.DB, log logger.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get database handle: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close postgres: %w", err)
	}
	log.Info("postgres connection closed")
	return nil
}
