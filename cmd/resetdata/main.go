// Command resetdata deletes all rows while preserving the schema and the
// migrations ledger, and resets the AUTOINCREMENT counters.
package main

import (
	"flag"

	"inventario/internal/config"
	"inventario/internal/infra"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Children first, so the deletes respect the foreign keys even when the
// pragma is back on.
var tablesInOrder = []string{
	"venta_items",
	"ventas",
	"movimientos",
	"productos",
	"categorias",
}

func main() {
	yes := flag.Bool("yes", false, "confirm deletion of all data")
	flag.Parse()

	if !*yes {
		log.Fatal().Msg("refusing to delete data without -yes")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	infra.ConfigurarLogger(cfg.Env, cfg.LogLevel)

	db, err := infra.NewDatabase(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.DBPath).Msg("failed to open database")
	}

	if err := reset(db); err != nil {
		log.Fatal().Err(err).Msg("reset failed")
	}
	log.Info().Str("db", cfg.DBPath).Msg("all data deleted, schema preserved")
}

func reset(db *gorm.DB) error {
	if err := db.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
		return err
	}
	defer db.Exec("PRAGMA foreign_keys = ON")

	return db.Transaction(func(tx *gorm.DB) error {
		for _, t := range tablesInOrder {
			if !tableExists(tx, t) {
				log.Warn().Str("tabla", t).Msg("table missing, skipped")
				continue
			}
			if err := tx.Exec("DELETE FROM " + t).Error; err != nil {
				return err
			}
			log.Info().Str("tabla", t).Msg("table cleared")
		}
		if tableExists(tx, "sqlite_sequence") {
			for _, t := range tablesInOrder {
				if err := tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", t).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func tableExists(db *gorm.DB, name string) bool {
	var n int
	err := db.Raw(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&n).Error
	return err == nil && n > 0
}
