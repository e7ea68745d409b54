package repository

import (
	"context"

	"inventario/internal/dto"
	"inventario/internal/model"

	"gorm.io/gorm"
)

type VentaRepository interface {
	// CrearTx inserts the header and its items in the caller's transaction.
	CrearTx(tx *gorm.DB, v *model.Venta) error
	// ActualizarCabeceraTx rewrites the mutable header fields.
	ActualizarCabeceraTx(tx *gorm.DB, v *model.Venta) error
	// ReemplazarItemsTx deletes the persisted items of a sale and inserts
	// the given set.
	ReemplazarItemsTx(tx *gorm.DB, ventaID int64, items []model.VentaItem) error
	ActualizarEstadoTx(tx *gorm.DB, id int64, estado, notas string) error
	ObtenerPorID(ctx context.Context, id int64) (*model.Venta, error)
	Listar(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, error)
	// DB exposes the DB for transaction creation in the service layer.
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) CrearTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) ActualizarCabeceraTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Model(&model.Venta{}).Where("id = ?", v.ID).
		Updates(map[string]interface{}{
			"total":  v.Total,
			"estado": v.Estado,
			"notas":  v.Notas,
		}).Error
}

func (r *ventaRepo) ReemplazarItemsTx(tx *gorm.DB, ventaID int64, items []model.VentaItem) error {
	if err := tx.Where("venta_id = ?", ventaID).Delete(&model.VentaItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].ID = 0
		items[i].VentaID = ventaID
		if err := tx.Create(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *ventaRepo) ActualizarEstadoTx(tx *gorm.DB, id int64, estado, notas string) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).
		Updates(map[string]interface{}{"estado": estado, "notas": notas}).Error
}

func (r *ventaRepo) ObtenerPorID(ctx context.Context, id int64) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Items.Producto").First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) Listar(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, error) {
	var ventas []model.Venta

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.FechaDesde != nil {
		q = q.Where("DATE(fecha_venta) >= DATE(?)", filter.FechaDesde.Format("2006-01-02"))
	}
	if filter.FechaHasta != nil {
		q = q.Where("DATE(fecha_venta) <= DATE(?)", filter.FechaHasta.Format("2006-01-02"))
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}

	err := q.Preload("Items.Producto").
		Order("fecha_venta DESC").
		Find(&ventas).Error
	return ventas, err
}
