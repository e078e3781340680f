package dto

import "github.com/shopspring/decimal"

// SettlePaymentRequest body para POST /api/settlements.
// Kind indica el lado a liquidar: "sale" (cobro a cliente) o "purchase"
// (pago a proveedor). Para contactos que son ambos, el caller DEBE elegir.
type SettlePaymentRequest struct {
	ContactID string          `json:"contact_id" validate:"required,uuid"`
	Kind      string          `json:"kind" validate:"required,oneof=sale purchase"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Reference string          `json:"reference,omitempty"`
}

// AllocationResponse asignación aplicada a una transacción, con el estado resultante.
type AllocationResponse struct {
	TransactionID string          `json:"transaction_id"`
	AmountApplied decimal.Decimal `json:"amount_applied"`
	NewPaidAmount decimal.Decimal `json:"new_paid_amount"`
	NewStatus     string          `json:"new_status"`
}

// SettlePaymentResponse resultado completo de la liquidación.
// UnappliedRemainder > 0 significa sobrepago; decidir si se guarda como
// crédito o se rechaza es del operador, por eso se devuelve siempre.
type SettlePaymentResponse struct {
	Allocations        []AllocationResponse `json:"allocations"`
	UnappliedRemainder decimal.Decimal      `json:"unapplied_remainder"`
}
