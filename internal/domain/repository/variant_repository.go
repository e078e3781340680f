package repository

import (
	"context"

	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// VariantRepository puerto de lectura de variantes (validación de existencia
// y resolución de la unidad base de almacenamiento).
type VariantRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Variant, error)
}

// LocationRepository puerto de lectura de sucursales.
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Location, error)
}

// ContactRepository puerto de lectura de contactos (clientes/proveedores).
type ContactRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Contact, error)
}
