package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo lectura del catálogo de unidades sobre PostgreSQL.
// El catálogo lo administra otro módulo; este core solo lee.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador de unidades.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// GetByID obtiene una unidad; nil si no existe.
func (r *UnitRepo) GetByID(ctx context.Context, id string) (*entity.Unit, error) {
	query := `
		SELECT id, name, short_name, allows_fractional, base_unit_id, base_unit_multiplier, created_at, updated_at
		FROM units WHERE id = $1`
	var u entity.Unit
	err := r.q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.ShortName, &u.AllowsFractional,
		&u.BaseUnitID, &u.BaseUnitMultiplier, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

// List lista todas las unidades del catálogo.
func (r *UnitRepo) List(ctx context.Context) ([]*entity.Unit, error) {
	query := `
		SELECT id, name, short_name, allows_fractional, base_unit_id, base_unit_multiplier, created_at, updated_at
		FROM units ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var out []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(
			&u.ID, &u.Name, &u.ShortName, &u.AllowsFractional,
			&u.BaseUnitID, &u.BaseUnitMultiplier, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}
