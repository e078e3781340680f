package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// TransactionRepository puerto hacia el almacén de transacciones pendientes.
type TransactionRepository interface {
	// ListOutstanding devuelve las transacciones due/partial del contacto y tipo,
	// ordenadas por (fecha, id) ascendente.
	ListOutstanding(ctx context.Context, contactID, kind string) ([]*entity.OutstandingTransaction, error)
	// ListOutstandingForUpdate igual que ListOutstanding pero bloqueando las filas
	// (SELECT FOR UPDATE) para que dos pagos concurrentes al mismo contacto no
	// se apliquen doble contra una transacción recién liquidada.
	ListOutstandingForUpdate(ctx context.Context, contactID, kind string) ([]*entity.OutstandingTransaction, error)
	// UpdatePaidAmount escribe el nuevo acumulado y estado de forma condicional:
	// si el paid_amount almacenado ya no es expectedPaid devuelve
	// ErrConcurrencyConflict y nada queda confirmado.
	UpdatePaidAmount(ctx context.Context, transactionID string, expectedPaid, newPaid decimal.Decimal, newStatus string) error
}
