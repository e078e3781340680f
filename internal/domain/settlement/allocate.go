package settlement

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// Servicio de dominio de asignación de pagos: dado un monto recibido y las
// transacciones pendientes de un contacto, decide cuánto absorbe cada una.
// Puro y determinista; la persistencia y el bloqueo por contacto son del
// caso de uso que lo invoca.

// Result resultado de una asignación.
// Invariante verificable: sum(Allocations.AmountApplied) + UnappliedRemainder == monto del pago.
// Un remanente positivo tras agotar la deuda significa sobrepago; qué hacer con
// él (crédito, rechazo) es política del caller, nunca se descarta en silencio.
type Result struct {
	Allocations        []entity.PaymentAllocation
	UnappliedRemainder decimal.Decimal
}

// Allocate recorre las transacciones abiertas de la más antigua a la más
// reciente (empate por ID ascendente) aplicando min(restante, saldo exacto).
// El saldo se recalcula siempre del PaidAmount autoritativo, nunca se estima.
// Un monto cero o negativo falla de inmediato con ErrInvalidPaymentAmount.
func Allocate(open []*entity.OutstandingTransaction, amount decimal.Decimal) (*Result, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidPaymentAmount
	}

	pending := make([]*entity.OutstandingTransaction, 0, len(open))
	for _, t := range open {
		if t.IsOpen() && t.Outstanding().GreaterThan(decimal.Zero) {
			pending = append(pending, t)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		if !pending[i].TransactionDate.Equal(pending[j].TransactionDate) {
			return pending[i].TransactionDate.Before(pending[j].TransactionDate)
		}
		return pending[i].ID < pending[j].ID
	})

	remaining := amount
	allocations := make([]entity.PaymentAllocation, 0, len(pending))
	for _, t := range pending {
		if remaining.IsZero() {
			break
		}
		applied := decimal.Min(remaining, t.Outstanding())
		if applied.GreaterThan(decimal.Zero) {
			allocations = append(allocations, entity.PaymentAllocation{
				TransactionID: t.ID,
				AmountApplied: applied,
			})
			remaining = remaining.Sub(applied)
		}
	}

	return &Result{Allocations: allocations, UnappliedRemainder: remaining}, nil
}
