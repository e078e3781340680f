package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo acceso al almacén de transacciones pendientes sobre PostgreSQL.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const outstandingColumns = `
	id, contact_id, kind, total_amount, paid_amount, transaction_date, payment_status, created_at, updated_at`

// ListOutstanding transacciones due/partial del contacto y tipo, ordenadas por
// (fecha, id) ascendente: el orden de asignación queda fijado por la consulta.
func (r *TransactionRepo) ListOutstanding(ctx context.Context, contactID, kind string) ([]*entity.OutstandingTransaction, error) {
	query := `
		SELECT ` + outstandingColumns + `
		FROM transactions
		WHERE contact_id = $1 AND kind = $2 AND payment_status IN ('due', 'partial')
		ORDER BY transaction_date ASC, id ASC`
	return r.list(ctx, query, contactID, kind)
}

// ListOutstandingForUpdate igual que ListOutstanding pero con FOR UPDATE: las
// filas quedan bloqueadas hasta el fin de la transacción para que un pago
// concurrente al mismo contacto no se aplique doble.
func (r *TransactionRepo) ListOutstandingForUpdate(ctx context.Context, contactID, kind string) ([]*entity.OutstandingTransaction, error) {
	query := `
		SELECT ` + outstandingColumns + `
		FROM transactions
		WHERE contact_id = $1 AND kind = $2 AND payment_status IN ('due', 'partial')
		ORDER BY transaction_date ASC, id ASC
		FOR UPDATE`
	return r.list(ctx, query, contactID, kind)
}

// UpdatePaidAmount escritura condicional del acumulado: la cláusula
// paid_amount = expected hace de compare-and-swap; cero filas afectadas
// significa que otra sesión ganó la carrera y nada queda confirmado.
func (r *TransactionRepo) UpdatePaidAmount(ctx context.Context, transactionID string, expectedPaid, newPaid decimal.Decimal, newStatus string) error {
	query := `
		UPDATE transactions
		SET paid_amount = $1, payment_status = $2, updated_at = now()
		WHERE id = $3 AND paid_amount = $4`
	tag, err := r.q.Exec(ctx, query, newPaid, newStatus, transactionID, expectedPaid)
	if err != nil {
		return fmt.Errorf("update paid amount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrencyConflict
	}
	return nil
}

func (r *TransactionRepo) list(ctx context.Context, query, contactID, kind string) ([]*entity.OutstandingTransaction, error) {
	rows, err := r.q.Query(ctx, query, contactID, kind)
	if err != nil {
		return nil, fmt.Errorf("list outstanding: %w", err)
	}
	defer rows.Close()

	var out []*entity.OutstandingTransaction
	for rows.Next() {
		var t entity.OutstandingTransaction
		if err := rows.Scan(
			&t.ID, &t.ContactID, &t.Kind, &t.TotalAmount, &t.PaidAmount,
			&t.TransactionDate, &t.PaymentStatus, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan outstanding: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
