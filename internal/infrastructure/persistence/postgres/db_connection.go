// Package postgres implements the repository contracts on PostgreSQL via gorm.
package postgres

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/turtacn/pulse/internal/config"
	"github.com/turtacn/pulse/internal/domain/models"
	"github.com/turtacn/pulse/pkg/errors"
	"github.com/turtacn/pulse/pkg/logger"
)

// NewDBConnection opens a gorm connection pool against PostgreSQL and runs
// schema migration for the owned tables.
func NewDBConnection(cfg *config.DatabaseConfig, log logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.ErrInternal("failed to connect to database").WithCause(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.ErrInternal("failed to access database pool").WithCause(err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.MinConns)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info(context.Background(), "connected to postgres", logger.Fields{
		"host": cfg.Host, "database": cfg.Database,
	})
	return db, nil
}

// Migrate creates or updates the owned tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Customer{}, &models.RiskProfile{}); err != nil {
		return errors.ErrInternal("schema migration failed").WithCause(err)
	}
	return nil
}
