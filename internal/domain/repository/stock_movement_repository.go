package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// StockMovementRepository puerto de persistencia para la bitácora de movimientos.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByVariant(ctx context.Context, variantID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByLocation(ctx context.Context, locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
