package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hostel-backend/config"
	"hostel-backend/internal/model"
)

// Init opens the database connection and configures the pool. Callers
// run Migrate separately.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	return gdb, nil
}

// Migrate runs gorm auto-migration for every table of the application.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&model.User{},
		&model.LeaveRequest{},
		&model.Complaint{},
		&model.MarketplaceItem{},
		&model.LostFoundReport{},
		&model.Poll{},
		&model.PollVote{},
		&model.MessMenu{},
		&model.MessFeedback{},
		&model.Notification{},
		&model.NotificationRead{},
		&model.PushSubscription{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}
