package main

import (
	"github.com/google/uuid"

	"github.com/aristath/portfolio-import/internal/clients/supabase"
	"github.com/aristath/portfolio-import/internal/config"
	"github.com/aristath/portfolio-import/internal/database"
	"github.com/aristath/portfolio-import/internal/modules/importing"
	"github.com/aristath/portfolio-import/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger not up yet; build a default one just to report this.
		bootLog := logger.New(logger.Config{Level: "info"})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	log = log.With().Str("run_id", uuid.NewString()).Logger()
	logger.SetGlobalLogger(log)

	log.Info().
		Str("backend", cfg.StoreBackend).
		Str("file", cfg.CSVPath).
		Msg("Starting trade-history import")

	var store importing.Store
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open database")
		}
		defer db.Close()

		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		store = database.NewStore(db, log)
	default:
		store = supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.HTTPTimeout, log)
	}

	rows, err := importing.ReadFile(cfg.CSVPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load input file")
	}

	svc := importing.NewService(store, log)
	summary, err := svc.Run(rows)
	if err != nil {
		log.Fatal().Err(err).Msg("Import aborted")
	}

	log.Info().
		Int("rows", summary.Rows).
		Int("stocks_resolved", summary.StocksResolved).
		Int("stocks_created", summary.StocksCreated).
		Int("trades_inserted", summary.TradesInserted).
		Int("rows_skipped", summary.RowsSkipped).
		Msg("Import complete")
}
