package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de ajuste de stock.
const (
	AdjustIncrease = "increase" // compra, devolución, ajuste+
	AdjustDecrease = "decrease" // venta, merma, ajuste-
)

// Tipos de movimiento registrados en la bitácora.
const (
	MovementTypeIncrease = "IN"
	MovementTypeDecrease = "OUT"
	MovementTypeTransfer = "TRANSFER"
)

// StockMovement es la bitácora de cada ajuste confirmado sobre el ledger.
// Quantity va firmada y en unidad base; EnteredQty/EnteredUnitID conservan
// la cantidad y unidad originales de la línea para auditoría.
type StockMovement struct {
	ID            string
	Reference     string // venta, compra, traslado o nota que originó el ajuste
	VariantID     string
	LocationID    string
	Type          string
	Quantity      decimal.Decimal // en unidad base; negativa para salidas
	EnteredQty    decimal.Decimal
	EnteredUnitID string
	CreatedAt     time.Time
	CreatedBy     string
}
