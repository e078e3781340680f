package units

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// Servicio de dominio de conversión de unidades (sin estado, sin efectos).
// Responde "cuántas unidades de B equivalen a una unidad de A" para pares con
// relación base/sub directa. El grafo es de dos niveles por diseño del
// catálogo: una sub-unidad de una sub-unidad no se resuelve, falla con
// ErrIncompatibleUnits y el caller debe pasar unidades que compartan base.

var one = decimal.NewFromInt(1)

// Multiplier devuelve el factor m tal que: cantidad_en_from * m = cantidad_en_to.
//   - from == to            → 1
//   - from es sub de to     → from.BaseUnitMultiplier
//   - to es sub de from     → 1 / to.BaseUnitMultiplier
//   - cualquier otro caso   → ErrIncompatibleUnits
func Multiplier(from, to *entity.Unit) (decimal.Decimal, error) {
	if from == nil || to == nil {
		return decimal.Zero, domain.ErrInvalidUnitDefinition
	}
	if err := validate(from); err != nil {
		return decimal.Zero, err
	}
	if err := validate(to); err != nil {
		return decimal.Zero, err
	}
	if from.ID == to.ID {
		return one, nil
	}
	if from.BaseUnitID != nil && *from.BaseUnitID == to.ID {
		return *from.BaseUnitMultiplier, nil
	}
	if to.BaseUnitID != nil && *to.BaseUnitID == from.ID {
		return one.Div(*to.BaseUnitMultiplier), nil
	}
	return decimal.Zero, domain.ErrIncompatibleUnits
}

// Convert convierte una cantidad de from a to: quantity * Multiplier(from, to).
// Sin redondeo interno: el redondeo a precisión de presentación es del caller.
func Convert(quantity decimal.Decimal, from, to *entity.Unit) (decimal.Decimal, error) {
	m, err := Multiplier(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return quantity.Mul(m), nil
}

// validate verifica la integridad de la definición: BaseUnitID y
// BaseUnitMultiplier van juntos o ninguno, y el multiplicador es > 0.
func validate(u *entity.Unit) error {
	if (u.BaseUnitID == nil) != (u.BaseUnitMultiplier == nil) {
		return domain.ErrInvalidUnitDefinition
	}
	if u.BaseUnitMultiplier != nil && !u.BaseUnitMultiplier.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidUnitDefinition
	}
	return nil
}
