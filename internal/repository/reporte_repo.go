package repository

import (
	"context"

	"gorm.io/gorm"
)

// FilaResumenCategoria is the raw aggregate row scanned from the category
// summary query. Money comes back as text so the service can parse it into
// a decimal without float round-trips.
type FilaResumenCategoria struct {
	Nombre       string
	NumProductos int
	Unidades     int
	ValorTotal   string
}

// ReporteRepository runs the aggregate queries behind the report tables.
type ReporteRepository interface {
	ResumenCategorias(ctx context.Context) ([]FilaResumenCategoria, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) ResumenCategorias(ctx context.Context) ([]FilaResumenCategoria, error) {
	var filas []FilaResumenCategoria
	// Products with no category are grouped under "Sin categoría", matching
	// the LEFT JOIN the product listings use.
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(c.nombre, 'Sin categoría')            AS nombre,
		       COUNT(p.id)                                    AS num_productos,
		       COALESCE(SUM(p.cantidad), 0)                   AS unidades,
		       COALESCE(ROUND(SUM(p.precio * p.cantidad), 2), 0) AS valor_total
		FROM productos p
		LEFT JOIN categorias c ON c.id = p.categoria_id
		GROUP BY c.id
		ORDER BY nombre ASC`).Scan(&filas).Error
	return filas, err
}
