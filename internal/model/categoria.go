package model

import (
	"time"
)

// Categoria represents a product category used to classify products.
type Categoria struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	Nombre        string `gorm:"uniqueIndex;not null"`
	Descripcion   *string
	FechaCreacion time.Time `gorm:"autoCreateTime"`
}

// TableName overrides GORM's default pluralization for Spanish names.
func (Categoria) TableName() string { return "categorias" }
