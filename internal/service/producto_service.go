package service

import (
	"context"

	"inventario/internal/apperror"
	"inventario/internal/dto"
	"inventario/internal/model"
	"inventario/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ProductoService defines business operations for products and their
// stock audit trail.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id int64) (dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ActualizarProductoRequest) (dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id int64) error
	// AjustarCantidad sets the product quantity to nuevaCantidad and
	// appends exactly one movement covering the signed difference.
	AjustarCantidad(ctx context.Context, id int64, nuevaCantidad int, notas string) (dto.ProductoResponse, error)
	Movimientos(ctx context.Context, productoID int64) ([]dto.MovimientoResponse, error)
}

type productoService struct {
	repo          repository.ProductoRepository
	movimientos   repository.MovimientoRepository
	categoriaRepo repository.CategoriaRepository
}

func NewProductoService(
	repo repository.ProductoRepository,
	movimientos repository.MovimientoRepository,
	categoriaRepo repository.CategoriaRepository,
) ProductoService {
	return &productoService{
		repo:          repo,
		movimientos:   movimientos,
		categoriaRepo: categoriaRepo,
	}
}

func mapProducto(p model.Producto) dto.ProductoResponse {
	nombre := ""
	if p.Categoria != nil {
		nombre = p.Categoria.Nombre
	}
	return dto.ProductoResponse{
		ID:              p.ID,
		Codigo:          p.Codigo,
		Nombre:          p.Nombre,
		Descripcion:     p.Descripcion,
		Precio:          p.Precio,
		Cantidad:        p.Cantidad,
		CategoriaID:     p.CategoriaID,
		CategoriaNombre: nombre,
		ValorTotal:      p.ValorTotal(),
		FechaCreacion:   p.FechaCreacion,
	}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (dto.ProductoResponse, error) {
	if err := validar(req); err != nil {
		return dto.ProductoResponse{}, err
	}
	if req.Precio.IsNegative() {
		return dto.ProductoResponse{}, apperror.NewValidation(map[string]string{"Precio": "gte=0"})
	}

	existing, err := s.repo.ObtenerPorCodigo(ctx, req.Codigo)
	if err != nil && !esNoEncontrado(err) {
		return dto.ProductoResponse{}, err
	}
	if existing != nil {
		return dto.ProductoResponse{}, apperror.ErrCodigoDuplicado
	}

	if req.CategoriaID != nil {
		if _, err := s.categoriaRepo.ObtenerPorID(ctx, *req.CategoriaID); err != nil {
			if esNoEncontrado(err) {
				return dto.ProductoResponse{}, apperror.ErrNoEncontrado
			}
			return dto.ProductoResponse{}, err
		}
	}

	p := &model.Producto{
		Codigo:      req.Codigo,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio.Round(2),
		Cantidad:    req.Cantidad,
		CategoriaID: req.CategoriaID,
	}
	if err := s.repo.Crear(ctx, p); err != nil {
		log.Error().Err(err).Str("codigo", req.Codigo).Msg("crear producto")
		return dto.ProductoResponse{}, err
	}
	return mapProducto(*p), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id int64) (dto.ProductoResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return dto.ProductoResponse{}, apperror.ErrNoEncontrado
		}
		return dto.ProductoResponse{}, err
	}
	return mapProducto(*p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	list, err := s.repo.Listar(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		result = append(result, mapProducto(p))
	}
	return result, nil
}

func (s *productoService) Actualizar(ctx context.Context, id int64, req dto.ActualizarProductoRequest) (dto.ProductoResponse, error) {
	if err := validar(req); err != nil {
		return dto.ProductoResponse{}, err
	}

	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return dto.ProductoResponse{}, apperror.ErrNoEncontrado
		}
		return dto.ProductoResponse{}, err
	}

	if req.Codigo != nil && *req.Codigo != p.Codigo {
		existing, err := s.repo.ObtenerPorCodigo(ctx, *req.Codigo)
		if err != nil && !esNoEncontrado(err) {
			return dto.ProductoResponse{}, err
		}
		if existing != nil && existing.ID != id {
			return dto.ProductoResponse{}, apperror.ErrCodigoDuplicado
		}
		p.Codigo = *req.Codigo
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.Precio != nil {
		if req.Precio.IsNegative() {
			return dto.ProductoResponse{}, apperror.NewValidation(map[string]string{"Precio": "gte=0"})
		}
		p.Precio = req.Precio.Round(2)
	}
	if req.CategoriaID != nil {
		if _, err := s.categoriaRepo.ObtenerPorID(ctx, *req.CategoriaID); err != nil {
			if esNoEncontrado(err) {
				return dto.ProductoResponse{}, apperror.ErrNoEncontrado
			}
			return dto.ProductoResponse{}, err
		}
		p.CategoriaID = req.CategoriaID
	}

	if err := s.repo.Actualizar(ctx, p); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("actualizar producto")
		return dto.ProductoResponse{}, err
	}
	return mapProducto(*p), nil
}

// Eliminar borra el producto y su historial de movimientos en una sola
// transacción: primero los movimientos, después el producto.
func (s *productoService) Eliminar(ctx context.Context, id int64) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		if esNoEncontrado(err) {
			return apperror.ErrNoEncontrado
		}
		return err
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.movimientos.EliminarPorProductoTx(tx, id); err != nil {
			return err
		}
		return s.repo.EliminarTx(tx, id)
	})
}

func (s *productoService) AjustarCantidad(ctx context.Context, id int64, nuevaCantidad int, notas string) (dto.ProductoResponse, error) {
	if nuevaCantidad < 0 {
		return dto.ProductoResponse{}, apperror.NewValidation(map[string]string{"Cantidad": "gte=0"})
	}

	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return dto.ProductoResponse{}, apperror.ErrNoEncontrado
		}
		return dto.ProductoResponse{}, err
	}

	delta := nuevaCantidad - p.Cantidad
	if delta == 0 {
		// Nothing changed: no write, no movement row.
		return mapProducto(*p), nil
	}

	tipo := model.MovimientoSalida
	if delta > 0 {
		tipo = model.MovimientoEntrada
	}
	abs := delta
	if abs < 0 {
		abs = -abs
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.FijarCantidadTx(tx, id, nuevaCantidad); err != nil {
			return err
		}
		return s.movimientos.CrearTx(tx, &model.Movimiento{
			ProductoID: id,
			Tipo:       tipo,
			Cantidad:   abs,
			Notas:      notas,
		})
	})
	if txErr != nil {
		log.Error().Err(txErr).Int64("id", id).Msg("ajustar cantidad")
		return dto.ProductoResponse{}, txErr
	}

	p.Cantidad = nuevaCantidad
	return mapProducto(*p), nil
}

func (s *productoService) Movimientos(ctx context.Context, productoID int64) ([]dto.MovimientoResponse, error) {
	list, err := s.movimientos.ListarPorProducto(ctx, productoID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.MovimientoResponse, 0, len(list))
	for _, m := range list {
		result = append(result, dto.MovimientoResponse{
			ID:       m.ID,
			Tipo:     m.Tipo,
			Cantidad: m.Cantidad,
			Fecha:    m.Fecha,
			Notas:    m.Notas,
		})
	}
	return result, nil
}
