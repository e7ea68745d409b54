package dto

import "time"

type CrearCategoriaRequest struct {
	Nombre      string `validate:"required,max=100"`
	Descripcion *string
}

type ActualizarCategoriaRequest struct {
	Nombre      *string `validate:"omitempty,max=100"`
	Descripcion *string
}

type CategoriaResponse struct {
	ID            int64
	Nombre        string
	Descripcion   *string
	FechaCreacion time.Time
}
