package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto is an inventory item. Cantidad is never written directly by
// update operations: it only changes through a stock adjustment (which
// appends a Movimiento) or through sale processing.
type Producto struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	Codigo        string `gorm:"uniqueIndex;not null"`
	Nombre        string `gorm:"index;not null"`
	Descripcion   *string
	Precio        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Cantidad      int             `gorm:"not null;default:0"`
	CategoriaID   *int64          `gorm:"index"`
	FechaCreacion time.Time       `gorm:"autoCreateTime"`

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
}

func (Producto) TableName() string { return "productos" }

// ValorTotal is the stock valuation of this product (precio × cantidad).
func (p *Producto) ValorTotal() decimal.Decimal {
	return p.Precio.Mul(decimal.NewFromInt(int64(p.Cantidad))).Round(2)
}
