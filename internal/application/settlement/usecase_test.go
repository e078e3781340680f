package settlement_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/application/settlement"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional (snapshot + rollback).
// ──────────────────────────────────────────────────────────────────────────────

type fakeTxnStore struct {
	txs map[string]*entity.OutstandingTransaction
}

func newFakeTxnStore() *fakeTxnStore {
	return &fakeTxnStore{txs: make(map[string]*entity.OutstandingTransaction)}
}

func (s *fakeTxnStore) seed(id, contactID, kind string, date time.Time, total, paid int64) {
	t := &entity.OutstandingTransaction{
		ID:              id,
		ContactID:       contactID,
		Kind:            kind,
		TotalAmount:     decimal.NewFromInt(total),
		PaidAmount:      decimal.NewFromInt(paid),
		TransactionDate: date,
	}
	t.PaymentStatus = entity.DerivePaymentStatus(t.PaidAmount, t.TotalAmount)
	s.txs[id] = t
}

type fakeTxnRepo struct{ store *fakeTxnStore }

func (r *fakeTxnRepo) ListOutstanding(_ context.Context, contactID, kind string) ([]*entity.OutstandingTransaction, error) {
	out := make([]*entity.OutstandingTransaction, 0)
	for _, t := range r.store.txs {
		if t.ContactID == contactID && t.Kind == kind && t.IsOpen() {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.Before(out[j].TransactionDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeTxnRepo) ListOutstandingForUpdate(ctx context.Context, contactID, kind string) ([]*entity.OutstandingTransaction, error) {
	return r.ListOutstanding(ctx, contactID, kind)
}

func (r *fakeTxnRepo) UpdatePaidAmount(_ context.Context, transactionID string, expectedPaid, newPaid decimal.Decimal, newStatus string) error {
	t, ok := r.store.txs[transactionID]
	if !ok {
		return domain.ErrNotFound
	}
	// Escritura condicional: el acumulado almacenado debe seguir siendo el leído.
	if !t.PaidAmount.Equal(expectedPaid) {
		return domain.ErrConcurrencyConflict
	}
	t.PaidAmount = newPaid
	t.PaymentStatus = newStatus
	t.UpdatedAt = time.Now()
	return nil
}

type fakeSettlementTx struct {
	store      *fakeTxnStore
	failOnTxID string // fuerza un conflicto en una transacción concreta
}

func (tr *fakeSettlementTx) RunSettlement(_ context.Context, fn func(repository.TransactionRepository) error) error {
	snapshot := make(map[string]*entity.OutstandingTransaction, len(tr.store.txs))
	for k, v := range tr.store.txs {
		cp := *v
		snapshot[k] = &cp
	}
	repo := &fakeTxnRepo{tr.store}
	var wrapped repository.TransactionRepository = repo
	if tr.failOnTxID != "" {
		wrapped = &conflictingRepo{inner: repo, failOn: tr.failOnTxID}
	}
	if err := fn(wrapped); err != nil {
		tr.store.txs = snapshot
		return err
	}
	return nil
}

// conflictingRepo simula otra sesión ganando la carrera sobre una transacción.
type conflictingRepo struct {
	inner  *fakeTxnRepo
	failOn string
}

func (r *conflictingRepo) ListOutstanding(ctx context.Context, contactID, kind string) ([]*entity.OutstandingTransaction, error) {
	return r.inner.ListOutstanding(ctx, contactID, kind)
}

func (r *conflictingRepo) ListOutstandingForUpdate(ctx context.Context, contactID, kind string) ([]*entity.OutstandingTransaction, error) {
	return r.inner.ListOutstandingForUpdate(ctx, contactID, kind)
}

func (r *conflictingRepo) UpdatePaidAmount(ctx context.Context, transactionID string, expectedPaid, newPaid decimal.Decimal, newStatus string) error {
	if transactionID == r.failOn {
		return domain.ErrConcurrencyConflict
	}
	return r.inner.UpdatePaidAmount(ctx, transactionID, expectedPaid, newPaid, newStatus)
}

type fakeContactRepo struct{ contacts map[string]*entity.Contact }

func (r *fakeContactRepo) GetByID(_ context.Context, id string) (*entity.Contact, error) {
	return r.contacts[id], nil
}

type fakeLock struct{ released *bool }

func (l *fakeLock) Release(context.Context) error {
	*l.released = true
	return nil
}

type fakeLocker struct {
	obtained int
	released bool
	fail     bool
}

func (l *fakeLocker) Obtain(context.Context, string) (settlement.ContactLock, error) {
	if l.fail {
		return nil, domain.ErrConcurrencyConflict
	}
	l.obtained++
	return &fakeLock{released: &l.released}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	cliente   = "c-cliente"
	proveedor = "c-proveedor"
)

func day(n int) time.Time {
	return time.Date(2025, 6, n, 0, 0, 0, 0, time.UTC)
}

func buildUseCase(store *fakeTxnStore, locker settlement.ContactLocker) *settlement.SettlePaymentUseCase {
	contacts := map[string]*entity.Contact{
		cliente:   {ID: cliente, Name: "Cliente Uno", Type: entity.ContactTypeCustomer},
		proveedor: {ID: proveedor, Name: "Proveedor Uno", Type: entity.ContactTypeSupplier},
	}
	return settlement.NewSettlePaymentUseCase(&fakeSettlementTx{store: store}, &fakeContactRepo{contacts}, locker)
}

// ──────────────────────────────────────────────────────────────────────────────
// SettlePayment
// ──────────────────────────────────────────────────────────────────────────────

// Pago 1200 contra A (1000, más antigua) y B (500): A queda paid, B partial 200.
func TestSettlePayment_DistribuyeYActualizaEstados(t *testing.T) {
	store := newFakeTxnStore()
	store.seed("tx-a", cliente, entity.TransactionKindSale, day(1), 1000, 0)
	store.seed("tx-b", cliente, entity.TransactionKindSale, day(5), 500, 0)
	uc := buildUseCase(store, nil)

	res, err := uc.SettlePayment(context.Background(), dto.SettlePaymentRequest{
		ContactID: cliente,
		Kind:      entity.TransactionKindSale,
		Amount:    decimal.NewFromInt(1200),
	})
	require.NoError(t, err)

	require.Len(t, res.Allocations, 2)
	assert.Equal(t, "tx-a", res.Allocations[0].TransactionID)
	assert.True(t, res.Allocations[0].AmountApplied.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, entity.PaymentStatusPaid, res.Allocations[0].NewStatus)
	assert.Equal(t, "tx-b", res.Allocations[1].TransactionID)
	assert.True(t, res.Allocations[1].AmountApplied.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, entity.PaymentStatusPartial, res.Allocations[1].NewStatus)
	assert.True(t, res.UnappliedRemainder.IsZero())

	// El almacén refleja el estado derivado, no estimado.
	assert.Equal(t, entity.PaymentStatusPaid, store.txs["tx-a"].PaymentStatus)
	assert.True(t, store.txs["tx-b"].PaidAmount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, entity.PaymentStatusPartial, store.txs["tx-b"].PaymentStatus)
}

// Pago posterior de 300 sobre B (saldo exacto 300): B queda paid.
func TestSettlePayment_PagoPosteriorLiquidaParcial(t *testing.T) {
	store := newFakeTxnStore()
	store.seed("tx-b", cliente, entity.TransactionKindSale, day(5), 500, 200)
	uc := buildUseCase(store, nil)

	res, err := uc.SettlePayment(context.Background(), dto.SettlePaymentRequest{
		ContactID: cliente,
		Kind:      entity.TransactionKindSale,
		Amount:    decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	require.Len(t, res.Allocations, 1)
	assert.True(t, res.Allocations[0].AmountApplied.Equal(decimal.NewFromInt(300)))
	assert.True(t, res.Allocations[0].NewPaidAmount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, entity.PaymentStatusPaid, res.Allocations[0].NewStatus)
	assert.Equal(t, entity.PaymentStatusPaid, store.txs["tx-b"].PaymentStatus)
}

func TestSettlePayment_MontoCeroFallaRapido(t *testing.T) {
	uc := buildUseCase(newFakeTxnStore(), nil)

	_, err := uc.SettlePayment(context.Background(), dto.SettlePaymentRequest{
		ContactID: cliente,
		Kind:      entity.TransactionKindSale,
		Amount:    decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentAmount)
}

// Contacto sin deuda: lista vacía y todo el pago como remanente (no error).
func TestSettlePayment_SinDeudaDevuelveRemanenteCompleto(t *testing.T) {
	uc := buildUseCase(newFakeTxnStore(), nil)

	res, err := uc.SettlePayment(context.Background(), dto.SettlePaymentRequest{
		ContactID: cliente,
		Kind:      entity.TransactionKindSale,
		Amount:    decimal.NewFromInt(750),
	})
	require.NoError(t, err)

	assert.Empty(t, res.Allocations)
	assert.True(t, res.UnappliedRemainder.Equal(decimal.NewFromInt(750)))
}

// Un cliente no admite liquidar compras: el lado lo elige el caller y se valida.
func TestSettlePayment_LadoIncorrectoParaElContacto(t *testing.T) {
	store := newFakeTxnStore()
	store.seed("tx-a", cliente, entity.TransactionKindSale, day(1), 1000, 0)
	uc := buildUseCase(store, nil)

	_, err := uc.SettlePayment(context.Background(), dto.SettlePaymentRequest{
		ContactID: cliente,
		Kind:      entity.TransactionKindPurchase,
		Amount:    decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettlePayment_ContactoInexistente(t *testing.T) {
	uc := buildUseCase(newFakeTxnStore(), nil)

	_, err := uc.SettlePayment(context.Background(), dto.SettlePaymentRequest{
		ContactID: "c-fantasma",
		Kind:      entity.TransactionKindSale,
		Amount:    decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Las transacciones del otro tipo del mismo contacto no participan.
func TestSettlePayment_NoMezclaTipos(t *testing.T) {
	store := newFakeTxnStore()
	store.seed("tx-compra", proveedor, entity.TransactionKindPurchase, day(1), 400, 0)
	uc := buildUseCase(store, nil)

	res, err := uc.SettlePayment(context.Background(), dto.SettlePaymentRequest{
		ContactID: proveedor,
		Kind:      entity.TransactionKindPurchase,
		Amount:    decimal.NewFromInt(400),
	})
	require.NoError(t, err)
	require.Len(t, res.Allocations, 1)
	assert.Equal(t, "tx-compra", res.Allocations[0].TransactionID)
	assert.Equal(t, entity.PaymentStatusPaid, store.txs["tx-compra"].PaymentStatus)
}

// El candado por contacto se obtiene antes de la sección crítica y se libera al final.
func TestSettlePayment_UsaCandadoPorContacto(t *testing.T) {
	store := newFakeTxnStore()
	store.seed("tx-a", cliente, entity.TransactionKindSale, day(1), 100, 0)
	locker := &fakeLocker{}
	uc := buildUseCase(store, locker)

	_, err := uc.SettlePayment(context.Background(), dto.SettlePaymentRequest{
		ContactID: cliente,
		Kind:      entity.TransactionKindSale,
		Amount:    decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, locker.obtained)
	assert.True(t, locker.released)
}

// Candado no obtenido: la liquidación no llega a tocar el almacén.
func TestSettlePayment_CandadoNoObtenido(t *testing.T) {
	store := newFakeTxnStore()
	store.seed("tx-a", cliente, entity.TransactionKindSale, day(1), 100, 0)
	uc := buildUseCase(store, &fakeLocker{fail: true})

	_, err := uc.SettlePayment(context.Background(), dto.SettlePaymentRequest{
		ContactID: cliente,
		Kind:      entity.TransactionKindSale,
		Amount:    decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	assert.True(t, store.txs["tx-a"].PaidAmount.IsZero())
}

// Conflicto de escritura a mitad de lote: rollback completo, nada aplicado.
func TestSettlePayment_ConflictoHaceRollbackTotal(t *testing.T) {
	store := newFakeTxnStore()
	store.seed("tx-a", cliente, entity.TransactionKindSale, day(1), 100, 0)
	store.seed("tx-b", cliente, entity.TransactionKindSale, day(2), 100, 0)
	runner := &fakeSettlementTx{store: store, failOnTxID: "tx-b"}
	contacts := map[string]*entity.Contact{
		cliente: {ID: cliente, Name: "Cliente Uno", Type: entity.ContactTypeCustomer},
	}
	uc := settlement.NewSettlePaymentUseCase(runner, &fakeContactRepo{contacts}, nil)

	_, err := uc.SettlePayment(context.Background(), dto.SettlePaymentRequest{
		ContactID: cliente,
		Kind:      entity.TransactionKindSale,
		Amount:    decimal.NewFromInt(150),
	})
	require.ErrorIs(t, err, domain.ErrConcurrencyConflict)

	// La primera asignación también se revirtió.
	assert.True(t, store.txs["tx-a"].PaidAmount.IsZero())
	assert.True(t, store.txs["tx-b"].PaidAmount.IsZero())
}
