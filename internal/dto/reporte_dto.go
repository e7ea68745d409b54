package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report rows are flat tables: one struct per row kind, exported to a
// spreadsheet as header + rows.

type FilaInventario struct {
	Codigo     string
	Nombre     string
	Categoria  string
	Precio     decimal.Decimal
	Cantidad   int
	ValorTotal decimal.Decimal
}

type FilaVenta struct {
	CodigoVenta string
	FechaVenta  time.Time
	Estado      string
	NumItems    int
	Total       decimal.Decimal
}

type FilaCategoria struct {
	Nombre        string
	NumProductos  int
	Unidades      int
	ValorTotal    decimal.Decimal
}
