package catalog

import (
	"context"

	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// UnitCatalogUseCase expone el catálogo de unidades en solo lectura.
// La creación/edición de unidades pertenece a gestión de catálogo, no al core.
type UnitCatalogUseCase struct {
	unitRepo repository.UnitRepository
}

// NewUnitCatalogUseCase construye el caso de uso del catálogo.
func NewUnitCatalogUseCase(unitRepo repository.UnitRepository) *UnitCatalogUseCase {
	return &UnitCatalogUseCase{unitRepo: unitRepo}
}

// ListUnits lista todas las unidades definidas.
func (uc *UnitCatalogUseCase) ListUnits(ctx context.Context) ([]dto.UnitResponse, error) {
	units, err := uc.unitRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, toUnitResponse(u))
	}
	return out, nil
}

// GetUnit obtiene una unidad por ID.
func (uc *UnitCatalogUseCase) GetUnit(ctx context.Context, id string) (*dto.UnitResponse, error) {
	u, err := uc.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	resp := toUnitResponse(u)
	return &resp, nil
}

func toUnitResponse(u *entity.Unit) dto.UnitResponse {
	return dto.UnitResponse{
		ID:                 u.ID,
		Name:               u.Name,
		ShortName:          u.ShortName,
		AllowsFractional:   u.AllowsFractional,
		BaseUnitID:         u.BaseUnitID,
		BaseUnitMultiplier: u.BaseUnitMultiplier,
	}
}
