package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale states. A sale is born "completada" on first save and can only
// transition to "cancelada", never back.
const (
	VentaCompletada = "completada"
	VentaCancelada  = "cancelada"
)

// Venta is a sale transaction with its line items. Total is always the
// rounded sum of the items' subtotals at the moment of save.
type Venta struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	CodigoVenta string          `gorm:"uniqueIndex;not null"`
	FechaVenta  time.Time       `gorm:"index;not null"`
	Total       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Estado      string          `gorm:"not null;default:'completada'"`
	Notas       string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []VentaItem `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem is one product line of a sale. PrecioUnitario is a snapshot of
// the product price at sale time and does not track later price changes.
type VentaItem struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	VentaID        int64           `gorm:"not null;index"`
	ProductoID     int64           `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (VentaItem) TableName() string { return "venta_items" }

// CalcularSubtotal recomputes Subtotal = cantidad × precio unitario,
// rounded to 2 decimals, and returns it.
func (i *VentaItem) CalcularSubtotal() decimal.Decimal {
	i.Subtotal = i.PrecioUnitario.Mul(decimal.NewFromInt(int64(i.Cantidad))).Round(2)
	return i.Subtotal
}

// AgregarItem appends a line to the sale and recomputes the total.
func (v *Venta) AgregarItem(productoID int64, cantidad int, precioUnitario decimal.Decimal) {
	item := VentaItem{
		ProductoID:     productoID,
		Cantidad:       cantidad,
		PrecioUnitario: precioUnitario,
	}
	item.CalcularSubtotal()
	v.Items = append(v.Items, item)
	v.CalcularTotal()
}

// EliminarItem removes the line at idx (no-op when out of range) and
// recomputes the total.
func (v *Venta) EliminarItem(idx int) {
	if idx < 0 || idx >= len(v.Items) {
		return
	}
	v.Items = append(v.Items[:idx], v.Items[idx+1:]...)
	v.CalcularTotal()
}

// CalcularTotal recomputes Total as the rounded sum of the items'
// subtotals. Idempotent: re-running never changes an already consistent
// total.
func (v *Venta) CalcularTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range v.Items {
		total = total.Add(v.Items[i].CalcularSubtotal())
	}
	v.Total = total.Round(2)
	return v.Total
}

// GenerarCodigoVenta builds the human-readable sale code: a timestamp
// prefix plus a random suffix. Collisions are negligible and additionally
// rejected by the unique index on codigo_venta.
func GenerarCodigoVenta() string {
	ts := time.Now().Format("20060102150405")
	suf := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("V-%s-%s", ts, suf)
}
