// Package initializer builds the infrastructure dependencies the
// application is assembled from: logger, database connection, schema
// migrations and the unit of work.
package initializer

import (
	"fmt"

	"github.com/zenbank/banking/infra"
	infrarepo "github.com/zenbank/banking/infra/repository"
	"github.com/zenbank/banking/pkg/app"
	"github.com/zenbank/banking/pkg/config"
)

// InitializeDependencies connects to the database, applies pending
// migrations and returns the assembled dependencies.
func InitializeDependencies(cfg *config.App) (app.Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return app.Deps{}, fmt.Errorf("connecting to database: %w", err)
	}

	if err = infra.RunMigrations(cfg.DB); err != nil {
		return app.Deps{}, err
	}

	return app.Deps{
		Uow:    infrarepo.NewUoW(db),
		Config: cfg,
		Logger: logger,
	}, nil
}
