package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"tunecrate/internal/identity"
	"tunecrate/internal/logging"
	"tunecrate/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logging.Setup(logging.Config{})
		log.Fatal().Err(err).Msg("load config")
	}

	logging.Setup(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()
	db, err := openDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	if err := ensureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure schema")
	}

	dataStore := store.New(db)
	directory := identity.NewDirectory(db)

	if err := bootstrapDemoData(ctx, directory, dataStore); err != nil {
		log.Fatal().Err(err).Msg("bootstrap demo data")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHTTPHandler(cfg, dataStore, directory),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().Str("addr", cfg.Addr).Msg("API listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
