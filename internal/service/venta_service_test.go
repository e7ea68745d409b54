package service

import (
	"context"
	"errors"
	"testing"

	"inventario/internal/apperror"
	"inventario/internal/dto"
	"inventario/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func precio(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nuevaVentaFixture() (*stubVentaRepo, *stubProductoRepo, VentaService, *model.Producto, *model.Producto) {
	productoRepo := newStubProductoRepo()
	a := productoRepo.agregar(model.Producto{Codigo: "A-001", Nombre: "Producto A", Precio: precio("10.00"), Cantidad: 10})
	b := productoRepo.agregar(model.Producto{Codigo: "B-001", Nombre: "Producto B", Precio: precio("5.00"), Cantidad: 5})
	ventaRepo := newStubVentaRepo()
	svc := NewVentaService(ventaRepo, productoRepo)
	return ventaRepo, productoRepo, svc, a, b
}

func TestGuardarVentaNuevaDescuentaStockYCalculaTotal(t *testing.T) {
	_, productoRepo, svc, a, b := nuevaVentaFixture()

	resp, err := svc.Guardar(context.Background(), dto.GuardarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{ProductoID: a.ID, Cantidad: 2},
			{ProductoID: b.ID, Cantidad: 1},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(precio("25.00")), "total = %s", resp.Total)
	assert.Equal(t, model.VentaCompletada, resp.Estado)
	assert.Regexp(t, `^V-\d{14}-[0-9A-F]{6}$`, resp.CodigoVenta)
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].Subtotal.Equal(precio("20.00")))
	assert.True(t, resp.Items[1].Subtotal.Equal(precio("5.00")))
	assert.Equal(t, "Producto A", resp.Items[0].Producto)

	assert.Equal(t, 8, productoRepo.productos[a.ID].Cantidad)
	assert.Equal(t, 4, productoRepo.productos[b.ID].Cantidad)
}

func TestGuardarVentaSnapshotDePrecio(t *testing.T) {
	_, productoRepo, svc, a, _ := nuevaVentaFixture()

	resp, err := svc.Guardar(context.Background(), dto.GuardarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: a.ID, Cantidad: 1}},
	})
	require.NoError(t, err)

	// A later product price change must not affect the persisted item.
	productoRepo.productos[a.ID].Precio = precio("99.99")

	releida, err := svc.ObtenerPorID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.True(t, releida.Items[0].PrecioUnitario.Equal(precio("10.00")))
	assert.True(t, releida.Total.Equal(precio("10.00")))
}

func TestCancelarVentaRestauraStock(t *testing.T) {
	ventaRepo, productoRepo, svc, a, b := nuevaVentaFixture()

	resp, err := svc.Guardar(context.Background(), dto.GuardarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{ProductoID: a.ID, Cantidad: 2},
			{ProductoID: b.ID, Cantidad: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 8, productoRepo.productos[a.ID].Cantidad)

	err = svc.Cancelar(context.Background(), resp.ID, "cliente se arrepintió")
	require.NoError(t, err)

	assert.Equal(t, 10, productoRepo.productos[a.ID].Cantidad)
	assert.Equal(t, 5, productoRepo.productos[b.ID].Cantidad)
	assert.Equal(t, model.VentaCancelada, ventaRepo.ventas[resp.ID].Estado)
	assert.Contains(t, ventaRepo.ventas[resp.ID].Notas, "VENTA CANCELADA")
	assert.Contains(t, ventaRepo.ventas[resp.ID].Notas, "cliente se arrepintió")
}

func TestCancelarDosVecesNoDuplicaStock(t *testing.T) {
	_, productoRepo, svc, a, _ := nuevaVentaFixture()

	resp, err := svc.Guardar(context.Background(), dto.GuardarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: a.ID, Cantidad: 3}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Cancelar(context.Background(), resp.ID, ""))
	require.Equal(t, 10, productoRepo.productos[a.ID].Cantidad)

	err = svc.Cancelar(context.Background(), resp.ID, "")
	assert.ErrorIs(t, err, apperror.ErrVentaYaCancelada)
	assert.Equal(t, 10, productoRepo.productos[a.ID].Cantidad, "second cancellation must not credit stock again")
}

func TestActualizarVentaNoReajustaStock(t *testing.T) {
	ventaRepo, productoRepo, svc, a, b := nuevaVentaFixture()

	resp, err := svc.Guardar(context.Background(), dto.GuardarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: a.ID, Cantidad: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, 8, productoRepo.productos[a.ID].Cantidad)

	// Replace the item set of the completed sale: different product,
	// different quantity. Stock was deducted at creation and stays as-is.
	editada, err := svc.Guardar(context.Background(), dto.GuardarVentaRequest{
		ID:    &resp.ID,
		Notas: "corregida",
		Items: []dto.ItemVentaRequest{{ProductoID: b.ID, Cantidad: 4}},
	})
	require.NoError(t, err)

	assert.Equal(t, 8, productoRepo.productos[a.ID].Cantidad)
	assert.Equal(t, 5, productoRepo.productos[b.ID].Cantidad)
	assert.True(t, editada.Total.Equal(precio("20.00")))

	guardada := ventaRepo.ventas[resp.ID]
	require.Len(t, guardada.Items, 1)
	assert.Equal(t, b.ID, guardada.Items[0].ProductoID)
	assert.Equal(t, "corregida", guardada.Notas)
	assert.Equal(t, resp.CodigoVenta, guardada.CodigoVenta, "el código no cambia al editar")
}

func TestActualizarVentaCanceladaFalla(t *testing.T) {
	_, _, svc, a, _ := nuevaVentaFixture()

	resp, err := svc.Guardar(context.Background(), dto.GuardarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: a.ID, Cantidad: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, svc.Cancelar(context.Background(), resp.ID, ""))

	_, err = svc.Guardar(context.Background(), dto.GuardarVentaRequest{
		ID:    &resp.ID,
		Items: []dto.ItemVentaRequest{{ProductoID: a.ID, Cantidad: 2}},
	})
	assert.ErrorIs(t, err, apperror.ErrVentaCancelada)
}

func TestGuardarVentaSinItemsEsInvalida(t *testing.T) {
	_, _, svc, _, _ := nuevaVentaFixture()

	_, err := svc.Guardar(context.Background(), dto.GuardarVentaRequest{})
	require.Error(t, err)
	var verr *apperror.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestGuardarVentaCantidadNoPositivaEsInvalida(t *testing.T) {
	_, _, svc, a, _ := nuevaVentaFixture()

	_, err := svc.Guardar(context.Background(), dto.GuardarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: a.ID, Cantidad: 0}},
	})
	require.Error(t, err)
	var verr *apperror.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestGuardarVentaProductoInexistente(t *testing.T) {
	_, _, svc, _, _ := nuevaVentaFixture()

	_, err := svc.Guardar(context.Background(), dto.GuardarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: 999, Cantidad: 1}},
	})
	assert.ErrorIs(t, err, apperror.ErrNoEncontrado)
}

func TestCancelarVentaInexistente(t *testing.T) {
	_, _, svc, _, _ := nuevaVentaFixture()

	err := svc.Cancelar(context.Background(), 999, "")
	assert.ErrorIs(t, err, apperror.ErrNoEncontrado)
}

func TestListarFiltraPorEstado(t *testing.T) {
	_, _, svc, a, _ := nuevaVentaFixture()

	v1, err := svc.Guardar(context.Background(), dto.GuardarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: a.ID, Cantidad: 1}},
	})
	require.NoError(t, err)
	_, err = svc.Guardar(context.Background(), dto.GuardarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: a.ID, Cantidad: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, svc.Cancelar(context.Background(), v1.ID, ""))

	canceladas, err := svc.Listar(context.Background(), dto.VentaFilter{Estado: model.VentaCancelada})
	require.NoError(t, err)
	require.Len(t, canceladas, 1)
	assert.Equal(t, v1.ID, canceladas[0].ID)

	todas, err := svc.Listar(context.Background(), dto.VentaFilter{})
	require.NoError(t, err)
	assert.Len(t, todas, 2)
}
