// Package service implements the business operations over the
// repositories. Multi-step operations run inside a single transaction so
// a failure never leaves a partially applied sale, cancellation or
// adjustment.
package service

import (
	"context"
	"errors"

	"inventario/internal/apperror"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New()

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// validar runs the struct tags of req and converts failures into the
// domain ValidationError envelope.
func validar(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return apperror.NewValidation(fields)
}

// esNoEncontrado normalizes the storage-level not-found error.
func esNoEncontrado(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
