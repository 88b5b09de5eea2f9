package main

import (
	"log/slog"
	"os"

	"github.com/ironlog/liftpredict/internal/config"
	"github.com/ironlog/liftpredict/internal/monitoring"
	"github.com/ironlog/liftpredict/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := monitoring.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger.Logger)

	logger.Info("Starting deadlift analysis pipeline",
		"data_file", cfg.DataFile,
		"personal_file", cfg.PersonalFile,
		"min_year", cfg.MinYear,
		"seed", cfg.Seed,
	)

	p := pipeline.New(cfg, logger)
	if _, err := p.Run(); err != nil {
		logger.Error("Pipeline failed", "error", err)
		os.Exit(1)
	}
}
