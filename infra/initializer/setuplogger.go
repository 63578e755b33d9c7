package initializer

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/log"

	"github.com/zenbank/banking/pkg/config"
)

func setupLogger(cfg *config.Log) *slog.Logger {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}

	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}

	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Formatter:       formatter,
	})

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}
