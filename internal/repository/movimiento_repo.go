package repository

import (
	"context"

	"inventario/internal/model"

	"gorm.io/gorm"
)

// MovimientoRepository persists the append-only stock audit trail.
type MovimientoRepository interface {
	// CrearTx runs inside the same transaction as the quantity write it
	// accounts for.
	CrearTx(tx *gorm.DB, m *model.Movimiento) error
	ListarPorProducto(ctx context.Context, productoID int64) ([]model.Movimiento, error)
	// EliminarPorProductoTx removes the history when its product is deleted.
	EliminarPorProductoTx(tx *gorm.DB, productoID int64) error
}

type movimientoRepo struct{ db *gorm.DB }

func NewMovimientoRepository(db *gorm.DB) MovimientoRepository {
	return &movimientoRepo{db: db}
}

func (r *movimientoRepo) CrearTx(tx *gorm.DB, m *model.Movimiento) error {
	return tx.Create(m).Error
}

func (r *movimientoRepo) ListarPorProducto(ctx context.Context, productoID int64) ([]model.Movimiento, error) {
	var list []model.Movimiento
	err := r.db.WithContext(ctx).
		Where("producto_id = ?", productoID).
		Order("fecha DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *movimientoRepo) EliminarPorProductoTx(tx *gorm.DB, productoID int64) error {
	return tx.Where("producto_id = ?", productoID).Delete(&model.Movimiento{}).Error
}
