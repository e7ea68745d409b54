// Package apperror defines the domain error taxonomy shared by all services.
// Callers distinguish outcomes with errors.Is against the sentinels below
// instead of matching on message text, which keeps the UI layer free to
// word things however it wants.
package apperror

import "errors"

var (
	// ErrNoEncontrado signals that the requested record does not exist.
	ErrNoEncontrado = errors.New("registro no encontrado")

	// ErrVentaYaCancelada is returned when cancelling a sale that is already
	// cancelled. It is a caller-visible no-op: stock is not credited again.
	ErrVentaYaCancelada = errors.New("la venta ya está cancelada")

	// ErrVentaCancelada is returned when trying to edit a cancelled sale.
	ErrVentaCancelada = errors.New("no se puede modificar una venta cancelada")

	// ErrCategoriaConProductos blocks deleting a category that still has
	// products associated.
	ErrCategoriaConProductos = errors.New("la categoría tiene productos asociados")

	// ErrCodigoDuplicado signals a unique-code collision on productos.
	ErrCodigoDuplicado = errors.New("ya existe un producto con ese código")

	// ErrNombreDuplicado signals a unique-name collision on categorias.
	ErrNombreDuplicado = errors.New("ya existe una categoría con ese nombre")
)

// ValidationError aggregates per-field validation failures detected before
// any write is attempted.
type ValidationError struct {
	Fields map[string]string
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	for campo, msg := range e.Fields {
		return "validación: " + campo + ": " + msg
	}
	return "error de validación"
}
