package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit representa una unidad de medida del catálogo (solo lectura para el core).
// Si BaseUnitID es nil la unidad ES una unidad base; si no, 1 de esta unidad
// equivale a BaseUnitMultiplier unidades de su base. El modelo es de dos niveles:
// base ↔ sub-unidades directas, sin cadenas transitivas.
type Unit struct {
	ID                 string
	Name               string
	ShortName          string
	AllowsFractional   bool
	BaseUnitID         *string
	BaseUnitMultiplier *decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsBase indica si la unidad es una unidad base (no deriva de otra).
func (u *Unit) IsBase() bool { return u.BaseUnitID == nil }
