package repository

import (
	"context"

	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// UnitRepository puerto de solo lectura hacia el catálogo de unidades.
// Las unidades se crean/editan en gestión de catálogo, fuera de este core.
type UnitRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Unit, error)
	List(ctx context.Context) ([]*entity.Unit, error)
}
