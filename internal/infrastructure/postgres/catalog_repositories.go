package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)
var _ repository.LocationRepository = (*LocationRepo)(nil)
var _ repository.ContactRepository = (*ContactRepo)(nil)

// VariantRepo lectura de variantes sobre PostgreSQL.
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador de variantes.
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

// GetByID obtiene una variante; nil si no existe.
func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.Variant, error) {
	query := `
		SELECT id, product_id, sku, name, unit_id, created_at, updated_at
		FROM variants WHERE id = $1`
	var v entity.Variant
	err := r.q.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.UnitID, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}

// LocationRepo lectura de sucursales sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de sucursales.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// GetByID obtiene una sucursal; nil si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	query := `
		SELECT id, name, address, created_at, updated_at
		FROM locations WHERE id = $1`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Name, &l.Address, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// ContactRepo lectura de contactos (clientes/proveedores) sobre PostgreSQL.
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador de contactos.
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

// GetByID obtiene un contacto; nil si no existe.
func (r *ContactRepo) GetByID(ctx context.Context, id string) (*entity.Contact, error) {
	query := `
		SELECT id, name, type, created_at, updated_at
		FROM contacts WHERE id = $1`
	var c entity.Contact
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return &c, nil
}
