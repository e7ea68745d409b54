package model

import (
	"time"
)

// Movement kinds. Cantidad on a Movimiento is always positive; the kind
// carries the direction.
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
)

// Movimiento registra cada cambio de stock de un producto fuera del flujo
// de ventas. Append-only: las filas nunca se actualizan, solo se borran en
// cascada cuando se elimina el producto.
type Movimiento struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ProductoID int64     `gorm:"not null;index"`
	Tipo       string    `gorm:"not null"` // "entrada" | "salida"
	Cantidad   int       `gorm:"not null"` // always positive: |delta|
	Fecha      time.Time `gorm:"autoCreateTime"`
	Notas      string

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (Movimiento) TableName() string { return "movimientos" }
