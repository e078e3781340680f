package entity

import "github.com/shopspring/decimal"

// PaymentAllocation es la porción de un pago aplicada a una transacción
// pendiente concreta. Es un resultado de cómputo transitorio, no estado
// persistido por sí mismo: el caller la usa para actualizar PaidAmount.
type PaymentAllocation struct {
	TransactionID string
	AmountApplied decimal.Decimal
}
