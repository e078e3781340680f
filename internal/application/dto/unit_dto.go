package dto

import "github.com/shopspring/decimal"

// UnitResponse unidad del catálogo expuesta por la API (solo lectura).
type UnitResponse struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	ShortName          string           `json:"short_name,omitempty"`
	AllowsFractional   bool             `json:"allows_fractional"`
	BaseUnitID         *string          `json:"base_unit_id,omitempty"`
	BaseUnitMultiplier *decimal.Decimal `json:"base_unit_multiplier,omitempty"`
}
