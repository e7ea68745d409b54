package service

import (
	"context"

	"inventario/internal/dto"
	"inventario/internal/export"
	"inventario/internal/repository"

	"github.com/shopspring/decimal"
)

// ReporteService builds the flat report tables and exports them as
// spreadsheets.
type ReporteService interface {
	ResumenInventario(ctx context.Context, filter dto.ProductoFilter) ([]dto.FilaInventario, error)
	ResumenVentas(ctx context.Context, filter dto.VentaFilter) ([]dto.FilaVenta, error)
	ResumenCategorias(ctx context.Context) ([]dto.FilaCategoria, error)

	ExportarInventario(ctx context.Context, path string, filter dto.ProductoFilter) error
	ExportarVentas(ctx context.Context, path string, filter dto.VentaFilter) error
	ExportarCategorias(ctx context.Context, path string) error
}

type reporteService struct {
	productos repository.ProductoRepository
	ventas    repository.VentaRepository
	reportes  repository.ReporteRepository
}

func NewReporteService(
	productos repository.ProductoRepository,
	ventas repository.VentaRepository,
	reportes repository.ReporteRepository,
) ReporteService {
	return &reporteService{productos: productos, ventas: ventas, reportes: reportes}
}

func (s *reporteService) ResumenInventario(ctx context.Context, filter dto.ProductoFilter) ([]dto.FilaInventario, error) {
	productos, err := s.productos.Listar(ctx, filter)
	if err != nil {
		return nil, err
	}
	filas := make([]dto.FilaInventario, 0, len(productos))
	for _, p := range productos {
		categoria := ""
		if p.Categoria != nil {
			categoria = p.Categoria.Nombre
		}
		filas = append(filas, dto.FilaInventario{
			Codigo:     p.Codigo,
			Nombre:     p.Nombre,
			Categoria:  categoria,
			Precio:     p.Precio,
			Cantidad:   p.Cantidad,
			ValorTotal: p.ValorTotal(),
		})
	}
	return filas, nil
}

func (s *reporteService) ResumenVentas(ctx context.Context, filter dto.VentaFilter) ([]dto.FilaVenta, error) {
	ventas, err := s.ventas.Listar(ctx, filter)
	if err != nil {
		return nil, err
	}
	filas := make([]dto.FilaVenta, 0, len(ventas))
	for _, v := range ventas {
		filas = append(filas, dto.FilaVenta{
			CodigoVenta: v.CodigoVenta,
			FechaVenta:  v.FechaVenta,
			Estado:      v.Estado,
			NumItems:    len(v.Items),
			Total:       v.Total,
		})
	}
	return filas, nil
}

func (s *reporteService) ResumenCategorias(ctx context.Context) ([]dto.FilaCategoria, error) {
	raw, err := s.reportes.ResumenCategorias(ctx)
	if err != nil {
		return nil, err
	}
	filas := make([]dto.FilaCategoria, 0, len(raw))
	for _, r := range raw {
		valor, err := decimal.NewFromString(r.ValorTotal)
		if err != nil {
			valor = decimal.Zero
		}
		filas = append(filas, dto.FilaCategoria{
			Nombre:       r.Nombre,
			NumProductos: r.NumProductos,
			Unidades:     r.Unidades,
			ValorTotal:   valor,
		})
	}
	return filas, nil
}

func (s *reporteService) ExportarInventario(ctx context.Context, path string, filter dto.ProductoFilter) error {
	filas, err := s.ResumenInventario(ctx, filter)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(filas))
	for _, f := range filas {
		rows = append(rows, []interface{}{
			f.Codigo, f.Nombre, f.Categoria,
			f.Precio.InexactFloat64(), f.Cantidad, f.ValorTotal.InexactFloat64(),
		})
	}
	return export.EscribirPlanilla(path, "Inventario",
		[]string{"Código", "Nombre", "Categoría", "Precio", "Cantidad", "Valor total"}, rows)
}

func (s *reporteService) ExportarVentas(ctx context.Context, path string, filter dto.VentaFilter) error {
	filas, err := s.ResumenVentas(ctx, filter)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(filas))
	for _, f := range filas {
		rows = append(rows, []interface{}{
			f.CodigoVenta, f.FechaVenta.Format("2006-01-02 15:04:05"),
			f.Estado, f.NumItems, f.Total.InexactFloat64(),
		})
	}
	return export.EscribirPlanilla(path, "Ventas",
		[]string{"Código", "Fecha", "Estado", "Ítems", "Total"}, rows)
}

func (s *reporteService) ExportarCategorias(ctx context.Context, path string) error {
	filas, err := s.ResumenCategorias(ctx)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(filas))
	for _, f := range filas {
		rows = append(rows, []interface{}{
			f.Nombre, f.NumProductos, f.Unidades, f.ValorTotal.InexactFloat64(),
		})
	}
	return export.EscribirPlanilla(path, "Categorías",
		[]string{"Categoría", "Productos", "Unidades", "Valor total"}, rows)
}
