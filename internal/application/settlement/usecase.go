package settlement

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
	"github.com/jhoicas/pos-core/internal/domain/settlement"
)

// SettlePaymentUseCase aplica un pago recibido contra las transacciones
// pendientes de un contacto: candado por contacto, transacción de BD con
// filas bloqueadas, asignación determinista y escritura condicional del
// nuevo paid_amount con su estado derivado.
type SettlePaymentUseCase struct {
	txRunner    TxRunner
	contactRepo repository.ContactRepository
	locker      ContactLocker // opcional; nil = solo bloqueo de filas en BD
}

// NewSettlePaymentUseCase construye el caso de uso de liquidación.
func NewSettlePaymentUseCase(
	txRunner TxRunner,
	contactRepo repository.ContactRepository,
	locker ContactLocker,
) *SettlePaymentUseCase {
	return &SettlePaymentUseCase{
		txRunner:    txRunner,
		contactRepo: contactRepo,
		locker:      locker,
	}
}

// SettlePayment ejecuta la liquidación completa. El monto debe ser > 0
// (ErrInvalidPaymentAmount); un contacto sin deuda devuelve lista vacía con
// todo el pago como remanente, no error. El remanente por sobrepago se
// devuelve siempre: guardarlo como crédito o rechazarlo es política del caller.
func (uc *SettlePaymentUseCase) SettlePayment(ctx context.Context, in dto.SettlePaymentRequest) (*dto.SettlePaymentResponse, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidPaymentAmount
	}
	if in.ContactID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Kind != entity.TransactionKindSale && in.Kind != entity.TransactionKindPurchase {
		return nil, domain.ErrInvalidInput
	}

	contact, err := uc.contactRepo.GetByID(ctx, in.ContactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrNotFound
	}
	// Un pago por cobrar solo toca ventas de un cliente; uno por pagar solo
	// compras de un proveedor. El lado nunca se infiere de las transacciones.
	if !contact.CanSettle(in.Kind) {
		return nil, domain.ErrInvalidInput
	}

	if uc.locker != nil {
		lock, err := uc.locker.Obtain(ctx, in.ContactID)
		if err != nil {
			return nil, err
		}
		defer func() { _ = lock.Release(ctx) }()
	}

	var resp *dto.SettlePaymentResponse
	err = uc.txRunner.RunSettlement(ctx, func(txRepo repository.TransactionRepository) error {
		open, err := txRepo.ListOutstandingForUpdate(ctx, in.ContactID, in.Kind)
		if err != nil {
			return err
		}
		result, err := settlement.Allocate(open, in.Amount)
		if err != nil {
			return err
		}

		byID := make(map[string]*entity.OutstandingTransaction, len(open))
		for _, t := range open {
			byID[t.ID] = t
		}

		allocations := make([]dto.AllocationResponse, 0, len(result.Allocations))
		for _, a := range result.Allocations {
			t := byID[a.TransactionID]
			newPaid := t.PaidAmount.Add(a.AmountApplied)
			newStatus := entity.DerivePaymentStatus(newPaid, t.TotalAmount)
			if err := txRepo.UpdatePaidAmount(ctx, t.ID, t.PaidAmount, newPaid, newStatus); err != nil {
				return err
			}
			allocations = append(allocations, dto.AllocationResponse{
				TransactionID: a.TransactionID,
				AmountApplied: a.AmountApplied,
				NewPaidAmount: newPaid,
				NewStatus:     newStatus,
			})
		}

		resp = &dto.SettlePaymentResponse{
			Allocations:        allocations,
			UnappliedRemainder: result.UnappliedRemainder,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
