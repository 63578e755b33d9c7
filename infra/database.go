// Package infra provides database connectivity and schema migrations.
package infra

import (
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zenbank/banking/pkg/config"
)

// NewDBConnection opens a pooled Postgres connection. SQL statement
// logging is enabled only in development.
func NewDBConnection(cfg *config.DB, appEnv string) (*gorm.DB, error) {
	if cfg.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}

	connection, err := gorm.Open(postgres.Open(cfg.Url), &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return connection, nil
}
