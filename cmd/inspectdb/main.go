// Command inspectdb prints the schema tables, their row counts and the
// current stock per product.
package main

import (
	"fmt"

	"inventario/internal/config"
	"inventario/internal/infra"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
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

	if err := inspect(db, cfg.DBPath); err != nil {
		log.Fatal().Err(err).Msg("inspection failed")
	}
}

func inspect(db *gorm.DB, path string) error {
	fmt.Printf("Base de datos: %s\n\n", path)

	var tables []string
	err := db.Raw(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name",
	).Scan(&tables).Error
	if err != nil {
		return err
	}

	fmt.Println("Tablas:")
	for _, t := range tables {
		var n int64
		if err := db.Raw("SELECT COUNT(*) FROM " + t).Scan(&n).Error; err != nil {
			return err
		}
		fmt.Printf("  %-20s %6d filas\n", t, n)
	}

	type stockRow struct {
		Codigo   string
		Nombre   string
		Cantidad int
	}
	var stock []stockRow
	err = db.Raw("SELECT codigo, nombre, cantidad FROM productos ORDER BY nombre").Scan(&stock).Error
	if err != nil {
		return err
	}

	fmt.Println("\nStock por producto:")
	for _, p := range stock {
		fmt.Printf("  %-12s %-30s %6d\n", p.Codigo, p.Nombre, p.Cantidad)
	}
	return nil
}
