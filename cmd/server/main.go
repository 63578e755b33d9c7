package main

import (
	"fmt"
	"log/slog"

	log "github.com/charmbracelet/log"

	_ "github.com/zenbank/banking/docs"
	"github.com/zenbank/banking/infra/initializer"
	"github.com/zenbank/banking/pkg/app"
	"github.com/zenbank/banking/pkg/config"
	"github.com/zenbank/banking/webapi"
)

// @title Banking API
// @version 1.0.0
// @description Banking API documentation
// @host localhost:5000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env", slog.Default())
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	a := app.New(deps)
	fiberApp := webapi.SetupApp(a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server", "env", cfg.Env, "address", addr)

	return fiberApp.Listen(addr)
}
