package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo persistencia de la bitácora de movimientos sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create guarda un movimiento confirmado.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements
			(id, reference, variant_id, location_id, type, quantity, entered_qty, entered_unit_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Reference, m.VariantID, m.LocationID, m.Type,
		m.Quantity, m.EnteredQty, m.EnteredUnitID, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByVariant lista movimientos de una variante, opcionalmente acotados por fecha.
func (r *StockMovementRepo) ListByVariant(ctx context.Context, variantID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, reference, variant_id, location_id, type, quantity, entered_qty, entered_unit_id, created_at, created_by
		FROM stock_movements
		WHERE variant_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	return r.list(ctx, query, variantID, from, to, limit, offset)
}

// ListByLocation lista movimientos de una sucursal, opcionalmente acotados por fecha.
func (r *StockMovementRepo) ListByLocation(ctx context.Context, locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, reference, variant_id, location_id, type, quantity, entered_qty, entered_unit_id, created_at, created_by
		FROM stock_movements
		WHERE location_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	return r.list(ctx, query, locationID, from, to, limit, offset)
}

func (r *StockMovementRepo) list(ctx context.Context, query, id string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.q.Query(ctx, query, id, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.Reference, &m.VariantID, &m.LocationID, &m.Type,
			&m.Quantity, &m.EnteredQty, &m.EnteredUnitID, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
