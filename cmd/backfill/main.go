package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	registrationapp "github.com/camphq/backend/internal/application/registration"
	"github.com/camphq/backend/internal/infrastructure/config"
	"github.com/camphq/backend/internal/infrastructure/logger"
	"github.com/camphq/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// Backfill CLI: assigns confirmation numbers to confirmed registrations that
// never received one. Safe to run repeatedly.
func main() {
	var (
		dryRun   bool
		logLevel string
	)

	flag.BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	regRepo := persistence.NewGormRegistrationRepository(db.DB)
	backfill := registrationapp.NewBackfillService(regRepo)

	ctx := logger.WithContext(context.Background(), log)
	report, err := backfill.Run(ctx, dryRun)
	if err != nil {
		log.Fatal("Backfill failed", zap.Error(err))
	}

	mode := "applied"
	if report.DryRun {
		mode = "dry-run"
	}
	log.Info("Backfill complete",
		zap.String("mode", mode),
		zap.Int("scanned", report.Scanned),
		zap.Int("updated", report.Updated),
		zap.Int("batches", report.Batches),
	)
}
