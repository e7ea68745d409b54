package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CrearProductoRequest struct {
	Codigo      string `validate:"required,max=50"`
	Nombre      string `validate:"required,max=200"`
	Descripcion *string
	Precio      decimal.Decimal
	Cantidad    int `validate:"gte=0"`
	CategoriaID *int64
}

// ActualizarProductoRequest is a partial update. Cantidad is deliberately
// absent: stock only changes through AjustarCantidad or sale processing so
// that every change leaves a movement trail.
type ActualizarProductoRequest struct {
	Codigo      *string `validate:"omitempty,max=50"`
	Nombre      *string `validate:"omitempty,max=200"`
	Descripcion *string
	Precio      *decimal.Decimal
	CategoriaID *int64
}

// ProductoFilter narrows listings. Termino matches nombre or codigo as a
// substring; CategoriaID restricts to one category.
type ProductoFilter struct {
	Termino     string
	CategoriaID *int64
}

type ProductoResponse struct {
	ID              int64
	Codigo          string
	Nombre          string
	Descripcion     *string
	Precio          decimal.Decimal
	Cantidad        int
	CategoriaID     *int64
	CategoriaNombre string
	ValorTotal      decimal.Decimal
	FechaCreacion   time.Time
}

type MovimientoResponse struct {
	ID       int64
	Tipo     string
	Cantidad int
	Fecha    time.Time
	Notas    string
}
