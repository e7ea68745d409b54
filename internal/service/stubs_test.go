package service

import (
	"context"

	"inventario/internal/dto"
	"inventario/internal/model"
	"inventario/internal/repository"

	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repositories. DB() returns nil so runTx executes the callback
// directly (unit test mode). Not-found is reported with
// gorm.ErrRecordNotFound, same as the real implementations.

type stubProductoRepo struct {
	productos map[int64]*model.Producto
	nextID    int64
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[int64]*model.Producto)}
}

func (r *stubProductoRepo) agregar(p model.Producto) *model.Producto {
	r.nextID++
	p.ID = r.nextID
	r.productos[p.ID] = &p
	return &p
}

func (r *stubProductoRepo) Crear(_ context.Context, p *model.Producto) error {
	r.nextID++
	p.ID = r.nextID
	copia := *p
	r.productos[p.ID] = &copia
	return nil
}

func (r *stubProductoRepo) ObtenerPorID(_ context.Context, id int64) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *stubProductoRepo) ObtenerPorCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.Codigo == codigo {
			copia := *p
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) Listar(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, error) {
	var list []model.Producto
	for _, p := range r.productos {
		list = append(list, *p)
	}
	return list, nil
}

func (r *stubProductoRepo) Actualizar(_ context.Context, p *model.Producto) error {
	actual, ok := r.productos[p.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	// cantidad no se toca: igual que la implementación real
	cantidad := actual.Cantidad
	copia := *p
	copia.Cantidad = cantidad
	r.productos[p.ID] = &copia
	return nil
}

func (r *stubProductoRepo) AjustarStockTx(_ *gorm.DB, id int64, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Cantidad += delta
	return nil
}

func (r *stubProductoRepo) FijarCantidadTx(_ *gorm.DB, id int64, cantidad int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Cantidad = cantidad
	return nil
}

func (r *stubProductoRepo) EliminarTx(_ *gorm.DB, id int64) error {
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

type stubMovimientoRepo struct {
	movimientos []model.Movimiento
}

func (r *stubMovimientoRepo) CrearTx(_ *gorm.DB, m *model.Movimiento) error {
	m.ID = int64(len(r.movimientos) + 1)
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) ListarPorProducto(_ context.Context, productoID int64) ([]model.Movimiento, error) {
	var list []model.Movimiento
	for _, m := range r.movimientos {
		if m.ProductoID == productoID {
			list = append(list, m)
		}
	}
	return list, nil
}

func (r *stubMovimientoRepo) EliminarPorProductoTx(_ *gorm.DB, productoID int64) error {
	keep := r.movimientos[:0]
	for _, m := range r.movimientos {
		if m.ProductoID != productoID {
			keep = append(keep, m)
		}
	}
	r.movimientos = keep
	return nil
}

var _ repository.MovimientoRepository = (*stubMovimientoRepo)(nil)

type stubCategoriaRepo struct {
	categorias map[int64]*model.Categoria
	// productosPorCategoria feeds ContarProductos
	productosPorCategoria map[int64]int64
	nextID                int64
}

func newStubCategoriaRepo() *stubCategoriaRepo {
	return &stubCategoriaRepo{
		categorias:            make(map[int64]*model.Categoria),
		productosPorCategoria: make(map[int64]int64),
	}
}

func (r *stubCategoriaRepo) Crear(_ context.Context, c *model.Categoria) error {
	r.nextID++
	c.ID = r.nextID
	copia := *c
	r.categorias[c.ID] = &copia
	return nil
}

func (r *stubCategoriaRepo) Listar(_ context.Context) ([]model.Categoria, error) {
	var list []model.Categoria
	for _, c := range r.categorias {
		list = append(list, *c)
	}
	return list, nil
}

func (r *stubCategoriaRepo) ObtenerPorID(_ context.Context, id int64) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *c
	return &copia, nil
}

func (r *stubCategoriaRepo) ObtenerPorNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if c.Nombre == nombre {
			copia := *c
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoriaRepo) BuscarPorNombre(_ context.Context, _ string) ([]model.Categoria, error) {
	return r.Listar(context.Background())
}

func (r *stubCategoriaRepo) Actualizar(_ context.Context, c *model.Categoria) error {
	if _, ok := r.categorias[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copia := *c
	r.categorias[c.ID] = &copia
	return nil
}

func (r *stubCategoriaRepo) Eliminar(_ context.Context, id int64) error {
	delete(r.categorias, id)
	return nil
}

func (r *stubCategoriaRepo) ContarProductos(_ context.Context, id int64) (int64, error) {
	return r.productosPorCategoria[id], nil
}

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

type stubVentaRepo struct {
	ventas map[int64]*model.Venta
	nextID int64
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[int64]*model.Venta)}
}

func clonarVenta(v *model.Venta) *model.Venta {
	copia := *v
	copia.Items = append([]model.VentaItem(nil), v.Items...)
	return &copia
}

func (r *stubVentaRepo) CrearTx(_ *gorm.DB, v *model.Venta) error {
	r.nextID++
	v.ID = r.nextID
	for i := range v.Items {
		v.Items[i].ID = int64(i + 1)
		v.Items[i].VentaID = v.ID
	}
	r.ventas[v.ID] = clonarVenta(v)
	return nil
}

func (r *stubVentaRepo) ActualizarCabeceraTx(_ *gorm.DB, v *model.Venta) error {
	actual, ok := r.ventas[v.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	actual.Total = v.Total
	actual.Estado = v.Estado
	actual.Notas = v.Notas
	return nil
}

func (r *stubVentaRepo) ReemplazarItemsTx(_ *gorm.DB, ventaID int64, items []model.VentaItem) error {
	v, ok := r.ventas[ventaID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Items = nil
	for i := range items {
		item := items[i]
		item.ID = int64(i + 1)
		item.VentaID = ventaID
		v.Items = append(v.Items, item)
	}
	return nil
}

func (r *stubVentaRepo) ActualizarEstadoTx(_ *gorm.DB, id int64, estado, notas string) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Estado = estado
	v.Notas = notas
	return nil
}

func (r *stubVentaRepo) ObtenerPorID(_ context.Context, id int64) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return clonarVenta(v), nil
}

func (r *stubVentaRepo) Listar(_ context.Context, filter dto.VentaFilter) ([]model.Venta, error) {
	var list []model.Venta
	for _, v := range r.ventas {
		if filter.Estado != "" && v.Estado != filter.Estado {
			continue
		}
		list = append(list, *clonarVenta(v))
	}
	return list, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)
