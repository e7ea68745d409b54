package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemVentaRequest struct {
	ProductoID int64 `validate:"required"`
	Cantidad   int   `validate:"required,gt=0"`
	// PrecioUnitario pins the snapshot price. When nil the product's
	// current price is snapshotted at save time.
	PrecioUnitario *decimal.Decimal
}

// GuardarVentaRequest saves a sale. ID nil means a new sale (stock is
// deducted); ID set means replacing the item set of an existing sale
// (stock untouched).
type GuardarVentaRequest struct {
	ID    *int64
	Notas string
	Items []ItemVentaRequest `validate:"required,min=1,dive"`
}

// VentaFilter selects sales by inclusive date range and/or estado.
// Empty estado means all states.
type VentaFilter struct {
	FechaDesde *time.Time
	FechaHasta *time.Time
	Estado     string
}

type ItemVentaResponse struct {
	ProductoID     int64
	Producto       string
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}

type VentaResponse struct {
	ID          int64
	CodigoVenta string
	FechaVenta  time.Time
	Total       decimal.Decimal
	Estado      string
	Notas       string
	Items       []ItemVentaResponse
}
