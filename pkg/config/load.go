package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the given env file (if present) and
// the process environment.
func Load(envFile string, logger *slog.Logger) (*App, error) {
	if err := godotenv.Load(envFile); err != nil {
		logger.Warn("no env file found, using system environment variables", "file", envFile)
	}
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
