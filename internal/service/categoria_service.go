package service

import (
	"context"

	"inventario/internal/apperror"
	"inventario/internal/dto"
	"inventario/internal/model"
	"inventario/internal/repository"

	"github.com/rs/zerolog/log"
)

// CategoriaService defines business operations for product categories.
type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	Buscar(ctx context.Context, termino string) ([]dto.CategoriaResponse, error)
	ObtenerPorID(ctx context.Context, id int64) (dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ActualizarCategoriaRequest) (dto.CategoriaResponse, error)
	Eliminar(ctx context.Context, id int64) error
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func mapCategoria(c model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{
		ID:            c.ID,
		Nombre:        c.Nombre,
		Descripcion:   c.Descripcion,
		FechaCreacion: c.FechaCreacion,
	}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error) {
	if err := validar(req); err != nil {
		return dto.CategoriaResponse{}, err
	}

	existing, err := s.repo.ObtenerPorNombre(ctx, req.Nombre)
	if err != nil && !esNoEncontrado(err) {
		return dto.CategoriaResponse{}, err
	}
	if existing != nil {
		return dto.CategoriaResponse{}, apperror.ErrNombreDuplicado
	}

	c := &model.Categoria{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
	}
	if err := s.repo.Crear(ctx, c); err != nil {
		log.Error().Err(err).Str("nombre", req.Nombre).Msg("crear categoría")
		return dto.CategoriaResponse{}, err
	}
	return mapCategoria(*c), nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategoria(c))
	}
	return result, nil
}

func (s *categoriaService) Buscar(ctx context.Context, termino string) ([]dto.CategoriaResponse, error) {
	list, err := s.repo.BuscarPorNombre(ctx, termino)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategoria(c))
	}
	return result, nil
}

func (s *categoriaService) ObtenerPorID(ctx context.Context, id int64) (dto.CategoriaResponse, error) {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return dto.CategoriaResponse{}, apperror.ErrNoEncontrado
		}
		return dto.CategoriaResponse{}, err
	}
	return mapCategoria(*c), nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id int64, req dto.ActualizarCategoriaRequest) (dto.CategoriaResponse, error) {
	if err := validar(req); err != nil {
		return dto.CategoriaResponse{}, err
	}

	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return dto.CategoriaResponse{}, apperror.ErrNoEncontrado
		}
		return dto.CategoriaResponse{}, err
	}

	if req.Nombre != nil && *req.Nombre != c.Nombre {
		existing, err := s.repo.ObtenerPorNombre(ctx, *req.Nombre)
		if err != nil && !esNoEncontrado(err) {
			return dto.CategoriaResponse{}, err
		}
		if existing != nil && existing.ID != id {
			return dto.CategoriaResponse{}, apperror.ErrNombreDuplicado
		}
		c.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		c.Descripcion = req.Descripcion
	}

	if err := s.repo.Actualizar(ctx, c); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("actualizar categoría")
		return dto.CategoriaResponse{}, err
	}
	return mapCategoria(*c), nil
}

// Eliminar borra la categoría solo si no tiene productos asociados. El
// chequeo se hace en la capa de aplicación, no se delega a la FK.
func (s *categoriaService) Eliminar(ctx context.Context, id int64) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		if esNoEncontrado(err) {
			return apperror.ErrNoEncontrado
		}
		return err
	}

	n, err := s.repo.ContarProductos(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperror.ErrCategoriaConProductos
	}
	return s.repo.Eliminar(ctx, id)
}
