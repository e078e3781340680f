package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appsettlement "github.com/jhoicas/pos-core/internal/application/settlement"
	"github.com/jhoicas/pos-core/internal/application/stock"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner and settlement.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ appsettlement.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con los
// repositorios atados a esa tx. Los SELECT FOR UPDATE de los repos mantienen
// el bloqueo de fila hasta el Commit/Rollback.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run transacción para ajustes del ledger: stock + bitácora, Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSettlement transacción para liquidaciones: la sección crítica
// "leer pendientes (FOR UPDATE) → asignar → escribir paid_amount" completa.
func (r *TxRunner) RunSettlement(ctx context.Context, fn func(
	txRepo repository.TransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTransactionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
