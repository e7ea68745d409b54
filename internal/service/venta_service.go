package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inventario/internal/apperror"
	"inventario/internal/dto"
	"inventario/internal/model"
	"inventario/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentaService implements the sale workflow: completada on first save,
// cancelada as the only (terminal) transition.
type VentaService interface {
	Guardar(ctx context.Context, req dto.GuardarVentaRequest) (*dto.VentaResponse, error)
	Cancelar(ctx context.Context, id int64, motivo string) error
	ObtenerPorID(ctx context.Context, id int64) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) ([]dto.VentaResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
}

func NewVentaService(repo repository.VentaRepository, productoRepo repository.ProductoRepository) VentaService {
	return &ventaService{repo: repo, productoRepo: productoRepo}
}

// resolvedItem carries a line with its price snapshot fixed and subtotal
// computed, ready to persist.
type resolvedItem struct {
	productoID int64
	nombre     string
	cantidad   int
	precio     decimal.Decimal
	subtotal   decimal.Decimal
}

// resolverItems fetches each product, fixes the unit price snapshot
// (request override or current product price) and computes the subtotals.
func (s *ventaService) resolverItems(ctx context.Context, items []dto.ItemVentaRequest) ([]resolvedItem, decimal.Decimal, error) {
	resolved := make([]resolvedItem, 0, len(items))
	total := decimal.Zero

	for _, item := range items {
		p, err := s.productoRepo.ObtenerPorID(ctx, item.ProductoID)
		if err != nil {
			if esNoEncontrado(err) {
				return nil, decimal.Zero, fmt.Errorf("producto %d: %w", item.ProductoID, apperror.ErrNoEncontrado)
			}
			return nil, decimal.Zero, err
		}

		precio := p.Precio
		if item.PrecioUnitario != nil {
			precio = item.PrecioUnitario.Round(2)
		}
		subtotal := precio.Mul(decimal.NewFromInt(int64(item.Cantidad))).Round(2)
		total = total.Add(subtotal)

		resolved = append(resolved, resolvedItem{
			productoID: p.ID,
			nombre:     p.Nombre,
			cantidad:   item.Cantidad,
			precio:     precio,
			subtotal:   subtotal,
		})
	}
	return resolved, total.Round(2), nil
}

// Guardar persists a sale.
//
// New sale (req.ID == nil): generate the code, compute subtotals and
// total, then insert header + items and decrement each product's stock in
// ONE transaction — either everything becomes visible or nothing does.
//
// Existing sale: update the header, delete the persisted items and insert
// the current set, again in one transaction. Stock is NOT re-adjusted:
// it was already deducted at original creation. That asymmetry is
// intentional and covered by a regression test.
func (s *ventaService) Guardar(ctx context.Context, req dto.GuardarVentaRequest) (*dto.VentaResponse, error) {
	if err := validar(req); err != nil {
		return nil, err
	}

	resolved, total, err := s.resolverItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	if req.ID == nil {
		return s.crear(ctx, req, resolved, total)
	}
	return s.actualizar(ctx, *req.ID, req, resolved, total)
}

func (s *ventaService) crear(ctx context.Context, req dto.GuardarVentaRequest, resolved []resolvedItem, total decimal.Decimal) (*dto.VentaResponse, error) {
	venta := model.Venta{
		CodigoVenta: model.GenerarCodigoVenta(),
		FechaVenta:  time.Now(),
		Total:       total,
		Estado:      model.VentaCompletada,
		Notas:       req.Notas,
	}
	for _, r := range resolved {
		venta.Items = append(venta.Items, model.VentaItem{
			ProductoID:     r.productoID,
			Cantidad:       r.cantidad,
			PrecioUnitario: r.precio,
			Subtotal:       r.subtotal,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CrearTx(tx, &venta); err != nil {
			return err
		}
		for _, r := range resolved {
			if err := s.productoRepo.AjustarStockTx(tx, r.productoID, -r.cantidad); err != nil {
				return fmt.Errorf("descontar stock de %s: %w", r.nombre, err)
			}
		}
		return nil
	})
	if txErr != nil {
		log.Error().Err(txErr).Str("codigo", venta.CodigoVenta).Msg("registrar venta")
		return nil, txErr
	}

	resp := ventaToResponse(&venta)
	for i, r := range resolved {
		resp.Items[i].Producto = r.nombre
	}
	return resp, nil
}

func (s *ventaService) actualizar(ctx context.Context, id int64, req dto.GuardarVentaRequest, resolved []resolvedItem, total decimal.Decimal) (*dto.VentaResponse, error) {
	venta, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return nil, apperror.ErrNoEncontrado
		}
		return nil, err
	}
	if venta.Estado == model.VentaCancelada {
		return nil, apperror.ErrVentaCancelada
	}

	items := make([]model.VentaItem, 0, len(resolved))
	for _, r := range resolved {
		items = append(items, model.VentaItem{
			ProductoID:     r.productoID,
			Cantidad:       r.cantidad,
			PrecioUnitario: r.precio,
			Subtotal:       r.subtotal,
		})
	}

	venta.Total = total
	venta.Notas = req.Notas

	// Replacing the items of an already-completed sale does not touch
	// stock: the deduction happened once, at creation.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.ActualizarCabeceraTx(tx, venta); err != nil {
			return err
		}
		return s.repo.ReemplazarItemsTx(tx, id, items)
	})
	if txErr != nil {
		log.Error().Err(txErr).Int64("id", id).Msg("actualizar venta")
		return nil, txErr
	}

	venta.Items = items
	resp := ventaToResponse(venta)
	for i, r := range resolved {
		resp.Items[i].Producto = r.nombre
	}
	return resp, nil
}

// Cancelar restores each item's quantity to its product and marks the
// sale cancelada, in one transaction. A sale that is already cancelada
// returns ErrVentaYaCancelada so the caller sees the no-op explicitly —
// stock is never credited twice.
func (s *ventaService) Cancelar(ctx context.Context, id int64, motivo string) error {
	venta, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return apperror.ErrNoEncontrado
		}
		return err
	}
	if venta.Estado == model.VentaCancelada {
		return apperror.ErrVentaYaCancelada
	}

	notas := strings.TrimSpace(fmt.Sprintf("VENTA CANCELADA. %s %s", venta.Notas, motivo))

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, item := range venta.Items {
			if err := s.productoRepo.AjustarStockTx(tx, item.ProductoID, item.Cantidad); err != nil {
				return fmt.Errorf("restaurar stock del producto %d: %w", item.ProductoID, err)
			}
		}
		return s.repo.ActualizarEstadoTx(tx, id, model.VentaCancelada, notas)
	})
	if txErr != nil {
		log.Error().Err(txErr).Int64("id", id).Msg("cancelar venta")
	}
	return txErr
}

func (s *ventaService) ObtenerPorID(ctx context.Context, id int64) (*dto.VentaResponse, error) {
	venta, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if esNoEncontrado(err) {
			return nil, apperror.ErrNoEncontrado
		}
		return nil, err
	}
	return ventaToResponse(venta), nil
}

// Listar returns sales filtered by inclusive date range and/or estado,
// newest first.
func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) ([]dto.VentaResponse, error) {
	ventas, err := s.repo.Listar(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		result = append(result, *ventaToResponse(&ventas[i]))
	}
	return result, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		items = append(items, dto.ItemVentaResponse{
			ProductoID:     item.ProductoID,
			Producto:       nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}
	return &dto.VentaResponse{
		ID:          v.ID,
		CodigoVenta: v.CodigoVenta,
		FechaVenta:  v.FechaVenta,
		Total:       v.Total,
		Estado:      v.Estado,
		Notas:       v.Notas,
		Items:       items,
	}
}
