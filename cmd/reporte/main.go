// Command reporte exports one of the report tables to a spreadsheet.
//
// Usage:
//
//	reporte -tipo inventario|ventas|categorias [-salida archivo.xlsx]
//	        [-desde 2006-01-02] [-hasta 2006-01-02] [-estado completada]
package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"inventario/internal/config"
	"inventario/internal/dto"
	"inventario/internal/infra"
	"inventario/internal/repository"
	"inventario/internal/service"

	"github.com/rs/zerolog/log"
)

func main() {
	tipo := flag.String("tipo", "inventario", "reporte a exportar: inventario | ventas | categorias")
	salida := flag.String("salida", "", "archivo .xlsx de salida (default: <tipo>.xlsx en EXPORT_DIR)")
	desde := flag.String("desde", "", "fecha inicial (YYYY-MM-DD), solo para ventas")
	hasta := flag.String("hasta", "", "fecha final (YYYY-MM-DD), solo para ventas")
	estado := flag.String("estado", "", "filtrar ventas por estado")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	infra.ConfigurarLogger(cfg.Env, cfg.LogLevel)

	db, err := infra.NewDatabase(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.DBPath).Msg("failed to open database")
	}

	// Composition root: repositories receive the store explicitly.
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	reporteRepo := repository.NewReporteRepository(db)
	reportes := service.NewReporteService(productoRepo, ventaRepo, reporteRepo)

	path := *salida
	if path == "" {
		path = filepath.Join(cfg.ExportDir, fmt.Sprintf("%s.xlsx", *tipo))
	}

	ctx := context.Background()
	switch *tipo {
	case "inventario":
		err = reportes.ExportarInventario(ctx, path, dto.ProductoFilter{})
	case "ventas":
		filter := dto.VentaFilter{Estado: *estado}
		if filter.FechaDesde, err = parseFecha(*desde); err != nil {
			log.Fatal().Err(err).Msg("flag -desde inválido")
		}
		if filter.FechaHasta, err = parseFecha(*hasta); err != nil {
			log.Fatal().Err(err).Msg("flag -hasta inválido")
		}
		err = reportes.ExportarVentas(ctx, path, filter)
	case "categorias":
		err = reportes.ExportarCategorias(ctx, path)
	default:
		log.Fatal().Str("tipo", *tipo).Msg("tipo de reporte desconocido")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}
	log.Info().Str("archivo", path).Msg("reporte exportado")
}

func parseFecha(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
