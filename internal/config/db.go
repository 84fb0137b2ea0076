package config

import (
	"fmt"
	"noteboard-backend/internal/logger"
	"noteboard-backend/internal/models"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB opens the connection pool. Writes are wrapped in explicit
// transactions by the repositories, so gorm's implicit one is skipped.
func ConnectDB(cfg Config, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:                 log.Gorm(cfg.DBLogLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("database connected")
	return db, nil
}

func MigrateAllModels(db *gorm.DB, run bool, log *logger.Logger) error {
	if !run {
		log.Info("skipping migration")
		return nil
	}

	err := db.AutoMigrate(
		// boards first, notes reference them
		&models.Board{},
		&models.Note{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("database migration completed")
	return nil
}

func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
