// Command migrate applies the pending schema migrations to the store.
package main

import (
	"context"

	"inventario/internal/config"
	"inventario/internal/infra"
	"inventario/internal/migrate"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	infra.ConfigurarLogger(cfg.Env, cfg.LogLevel)

	db, err := infra.NewDatabase(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.DBPath).Msg("failed to open database")
	}

	runner := migrate.NewRunner(db, migrate.Embedded())
	applied, err := runner.Run(context.Background())
	if err != nil {
		log.Fatal().Err(err).Strs("aplicadas", applied).Msg("migration run aborted")
	}
	if len(applied) == 0 {
		log.Info().Msg("no pending migrations")
		return
	}
	log.Info().Strs("aplicadas", applied).Msg("migrations applied")
}
