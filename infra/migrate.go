package infra

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/zenbank/banking/pkg/config"
)

// RunMigrations applies any pending schema migrations. A database that
// is already up to date is not an error.
func RunMigrations(cfg *config.DB) error {
	m, err := migrate.New(cfg.MigrationsPath, cfg.Url)
	if err != nil {
		return fmt.Errorf("opening migration source: %w", err)
	}
	defer m.Close()
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}
