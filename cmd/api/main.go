package main

import (
	"polypoint-backend/internal/config"
	"polypoint-backend/internal/interfaces/router"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}

	app, db, dashCache, err := router.CreateApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("app create")
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Ping(); err != nil {
			log.Fatal().Err(err).Msg("record store connection failed")
		}
	}
	if cfg.DatabaseURL != "" {
		log.Info().Msg("Record store: Postgres")
	} else {
		log.Info().Str("path", cfg.SQLitePath).Msg("Record store: local sqlite")
	}
	if dashCache != nil {
		log.Info().Msg("Dashboard cache: Redis")
	}

	log.Info().Str("port", cfg.Port).Msg("Server running")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
}
