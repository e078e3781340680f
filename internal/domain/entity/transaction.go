package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción pendiente.
const (
	TransactionKindSale     = "sale"     // cuenta por cobrar (cliente)
	TransactionKindPurchase = "purchase" // cuenta por pagar (proveedor)
)

// Estados de pago. Derivados SIEMPRE de PaidAmount vs TotalAmount, nunca estimados:
// son la base de toda decisión de asignación futura.
const (
	PaymentStatusDue     = "due"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// OutstandingTransaction representa una venta o compra cuyo total no ha sido
// totalmente pagado/recibido. Invariante: 0 <= PaidAmount <= TotalAmount.
type OutstandingTransaction struct {
	ID              string
	ContactID       string
	Kind            string // sale, purchase
	TotalAmount     decimal.Decimal
	PaidAmount      decimal.Decimal
	TransactionDate time.Time
	PaymentStatus   string // due, partial, paid
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Outstanding saldo pendiente exacto, recalculado del PaidAmount autoritativo.
func (t *OutstandingTransaction) Outstanding() decimal.Decimal {
	return t.TotalAmount.Sub(t.PaidAmount)
}

// IsOpen indica si la transacción aún admite pagos.
func (t *OutstandingTransaction) IsOpen() bool {
	return t.PaymentStatus == PaymentStatusDue || t.PaymentStatus == PaymentStatusPartial
}

// DerivePaymentStatus deriva el estado de pago con comparación decimal exacta:
// due si no se ha pagado nada, paid si se pagó el total, partial en el resto.
func DerivePaymentStatus(paid, total decimal.Decimal) string {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return PaymentStatusDue
	case paid.GreaterThanOrEqual(total):
		return PaymentStatusPaid
	default:
		return PaymentStatusPartial
	}
}
