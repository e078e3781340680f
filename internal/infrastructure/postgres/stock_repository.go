package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// La tabla stock_levels guarda qty_available SIEMPRE en la unidad base de la variante.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de una variante en una sucursal.
// Par sin fila: registro con cantidad cero, no error.
func (r *StockRepo) Get(ctx context.Context, variantID, locationID string) (*entity.StockRecord, error) {
	query := `
		SELECT variant_id, location_id, qty_available, alert_threshold, updated_at
		FROM stock_levels WHERE variant_id = $1 AND location_id = $2`
	var s entity.StockRecord
	err := r.q.QueryRow(ctx, query, variantID, locationID).Scan(
		&s.VariantID, &s.LocationID, &s.QtyAvailable, &s.AlertThreshold, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return emptyRecord(variantID, locationID), nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE) hasta el
// fin de la transacción: dos ventas concurrentes no pueden pasar ambas el
// chequeo de disponibilidad contra la misma fila.
func (r *StockRepo) GetForUpdate(ctx context.Context, variantID, locationID string) (*entity.StockRecord, error) {
	query := `
		SELECT variant_id, location_id, qty_available, alert_threshold, updated_at
		FROM stock_levels WHERE variant_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.StockRecord
	err := r.q.QueryRow(ctx, query, variantID, locationID).Scan(
		&s.VariantID, &s.LocationID, &s.QtyAvailable, &s.AlertThreshold, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return emptyRecord(variantID, locationID), nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// ApplyDelta suma delta de forma atómica: el incremento se calcula en el
// UPDATE sobre el valor almacenado, nunca sobre una lectura previa de la
// sesión. La fila se materializa aquí en el primer movimiento; dos
// materializaciones concurrentes convergen vía ON CONFLICT.
func (r *StockRepo) ApplyDelta(ctx context.Context, variantID, locationID string, delta decimal.Decimal) (*entity.StockRecord, error) {
	query := `
		INSERT INTO stock_levels (variant_id, location_id, qty_available, alert_threshold, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (variant_id, location_id)
		DO UPDATE SET qty_available = stock_levels.qty_available + EXCLUDED.qty_available, updated_at = now()
		RETURNING variant_id, location_id, qty_available, alert_threshold, updated_at`
	var s entity.StockRecord
	err := r.q.QueryRow(ctx, query, variantID, locationID, delta).Scan(
		&s.VariantID, &s.LocationID, &s.QtyAvailable, &s.AlertThreshold, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("apply stock delta: %w", err)
	}
	return &s, nil
}

func emptyRecord(variantID, locationID string) *entity.StockRecord {
	return &entity.StockRecord{
		VariantID:    variantID,
		LocationID:   locationID,
		QtyAvailable: decimal.Zero,
	}
}
