package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckAvailabilityRequest body para POST /api/stock/check.
// Quantity viene en la unidad de la línea (UnitID), no necesariamente la base.
type CheckAvailabilityRequest struct {
	VariantID  string          `json:"variant_id" validate:"required,uuid"`
	LocationID string          `json:"location_id" validate:"required,uuid"`
	Quantity   decimal.Decimal `json:"quantity" validate:"required"`
	UnitID     string          `json:"unit_id" validate:"required,uuid"`
}

// AvailabilityResponse resultado del pre-chequeo (puro, sin mutación).
// Todas las cantidades van en la unidad base de la variante.
type AvailabilityResponse struct {
	Sufficient bool            `json:"sufficient"`
	Available  decimal.Decimal `json:"available"`
	Requested  decimal.Decimal `json:"requested"`
	Shortfall  decimal.Decimal `json:"shortfall"`
	BaseUnitID string          `json:"base_unit_id"`
}

// AdjustStockRequest body para POST /api/stock/adjust.
// Direction: increase (compra/ajuste+) o decrease (venta/ajuste-).
// AllowNegative habilita stock negativo SOLO para esta operación; es una
// política explícita del caller, no un global oculto.
type AdjustStockRequest struct {
	VariantID     string          `json:"variant_id" validate:"required,uuid"`
	LocationID    string          `json:"location_id" validate:"required,uuid"`
	Quantity      decimal.Decimal `json:"quantity" validate:"required"`
	UnitID        string          `json:"unit_id" validate:"required,uuid"`
	Direction     string          `json:"direction" validate:"required,oneof=increase decrease"`
	AllowNegative bool            `json:"allow_negative,omitempty"`
	Reference     string          `json:"reference,omitempty"`
}

// AdjustStockResponse nueva cantidad tras el ajuste, en unidad base.
type AdjustStockResponse struct {
	NewQtyAvailable decimal.Decimal `json:"new_qty_available"`
	BaseUnitID      string          `json:"base_unit_id"`
	BelowAlert      bool            `json:"below_alert"`
}

// TransferStockRequest body para POST /api/stock/transfer: resta en origen y
// suma en destino como una sola unidad lógica (ambos o ninguno).
type TransferStockRequest struct {
	VariantID      string          `json:"variant_id" validate:"required,uuid"`
	FromLocationID string          `json:"from_location_id" validate:"required,uuid"`
	ToLocationID   string          `json:"to_location_id" validate:"required,uuid"`
	Quantity       decimal.Decimal `json:"quantity" validate:"required"`
	UnitID         string          `json:"unit_id" validate:"required,uuid"`
	Reference      string          `json:"reference,omitempty"`
}

// MovementQuery filtros para GET /api/stock/movements. Exactamente uno de
// VariantID o LocationID debe venir informado.
type MovementQuery struct {
	VariantID  string `query:"variant_id"`
	LocationID string `query:"location_id"`
	From       *time.Time
	To         *time.Time
	PageRequest
}

// MovementResponse asiento de la bitácora de movimientos. Quantity va firmada
// y en unidad base; EnteredQty/EnteredUnitID preservan lo que tecleó el operador.
type MovementResponse struct {
	ID            string          `json:"id"`
	Reference     string          `json:"reference,omitempty"`
	VariantID     string          `json:"variant_id"`
	LocationID    string          `json:"location_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	EnteredQty    decimal.Decimal `json:"entered_qty"`
	EnteredUnitID string          `json:"entered_unit_id"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by"`
}

// StockResponse consulta de disponibilidad actual.
type StockResponse struct {
	VariantID    string          `json:"variant_id"`
	LocationID   string          `json:"location_id"`
	QtyAvailable decimal.Decimal `json:"qty_available"`
	BaseUnitID   string          `json:"base_unit_id"`
	BelowAlert   bool            `json:"below_alert"`
}
