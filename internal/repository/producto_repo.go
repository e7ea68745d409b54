package repository

import (
	"context"

	"inventario/internal/dto"
	"inventario/internal/model"

	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM
// implementation, enabling unit testing via in-memory stubs.
type ProductoRepository interface {
	Crear(ctx context.Context, p *model.Producto) error
	ObtenerPorID(ctx context.Context, id int64) (*model.Producto, error)
	ObtenerPorCodigo(ctx context.Context, codigo string) (*model.Producto, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error)
	// Actualizar persists identity/price fields. It never writes cantidad:
	// stock changes go through the Tx methods below so each one is
	// accounted for.
	Actualizar(ctx context.Context, p *model.Producto) error

	// Used inside transactions — callers must pass the tx instance.
	AjustarStockTx(tx *gorm.DB, id int64, delta int) error
	FijarCantidadTx(tx *gorm.DB, id int64, cantidad int) error
	EliminarTx(tx *gorm.DB, id int64) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) DB() *gorm.DB { return r.db }

func (r *productoRepo) Crear(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) ObtenerPorID(ctx context.Context, id int64) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Categoria").First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) ObtenerPorCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) Listar(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	var productos []model.Producto

	q := r.db.WithContext(ctx).Model(&model.Producto{}).Preload("Categoria")

	if filter.Termino != "" {
		like := "%" + filter.Termino + "%"
		q = q.Where("lower(nombre) LIKE lower(?) OR lower(codigo) LIKE lower(?)", like, like)
	}
	if filter.CategoriaID != nil {
		q = q.Where("categoria_id = ?", *filter.CategoriaID)
	}

	err := q.Order("nombre asc").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Actualizar(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ?", p.ID).
		Select("codigo", "nombre", "descripcion", "precio", "categoria_id").
		Updates(map[string]interface{}{
			"codigo":       p.Codigo,
			"nombre":       p.Nombre,
			"descripcion":  p.Descripcion,
			"precio":       p.Precio,
			"categoria_id": p.CategoriaID,
		}).Error
}

func (r *productoRepo) AjustarStockTx(tx *gorm.DB, id int64, delta int) error {
	return tx.Model(&model.Producto{}).Where("id = ?", id).
		Update("cantidad", gorm.Expr("cantidad + ?", delta)).Error
}

func (r *productoRepo) FijarCantidadTx(tx *gorm.DB, id int64, cantidad int) error {
	return tx.Model(&model.Producto{}).Where("id = ?", id).
		Update("cantidad", cantidad).Error
}

func (r *productoRepo) EliminarTx(tx *gorm.DB, id int64) error {
	return tx.Delete(&model.Producto{}, id).Error
}
