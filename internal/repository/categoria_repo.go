package repository

import (
	"context"

	"inventario/internal/model"

	"gorm.io/gorm"
)

// CategoriaRepository defines CRUD operations for Categoria.
type CategoriaRepository interface {
	Crear(ctx context.Context, c *model.Categoria) error
	Listar(ctx context.Context) ([]model.Categoria, error)
	ObtenerPorID(ctx context.Context, id int64) (*model.Categoria, error)
	ObtenerPorNombre(ctx context.Context, nombre string) (*model.Categoria, error)
	BuscarPorNombre(ctx context.Context, termino string) ([]model.Categoria, error)
	Actualizar(ctx context.Context, c *model.Categoria) error
	Eliminar(ctx context.Context, id int64) error
	// ContarProductos counts the products referencing a category. Used to
	// enforce the referential guard on delete at the application layer.
	ContarProductos(ctx context.Context, id int64) (int64, error)
}

type categoriaRepository struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository {
	return &categoriaRepository{db: db}
}

func (r *categoriaRepository) Crear(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoriaRepository) Listar(ctx context.Context) ([]model.Categoria, error) {
	var list []model.Categoria
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *categoriaRepository) ObtenerPorID(ctx context.Context, id int64) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepository) ObtenerPorNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).Where("lower(nombre) = lower(?)", nombre).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepository) BuscarPorNombre(ctx context.Context, termino string) ([]model.Categoria, error) {
	var list []model.Categoria
	err := r.db.WithContext(ctx).
		Where("lower(nombre) LIKE lower(?)", "%"+termino+"%").
		Order("nombre asc").
		Find(&list).Error
	return list, err
}

func (r *categoriaRepository) Actualizar(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoriaRepository) Eliminar(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Categoria{}, id).Error
}

func (r *categoriaRepository) ContarProductos(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("categoria_id = ?", id).Count(&n).Error
	return n, err
}
