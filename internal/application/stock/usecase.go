package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
	"github.com/jhoicas/pos-core/internal/domain/units"
)

// LedgerUseCase es la fuente única de verdad de "cuánto hay de la variante V
// en la sucursal L". Toda cantidad se normaliza a la unidad base de la
// variante vía el grafo de unidades antes de tocar el ledger; los ajustes son
// read-check-write atómicos con bloqueo de fila (SELECT FOR UPDATE).
type LedgerUseCase struct {
	txRunner     TxRunner
	stockRepo    repository.StockRepository         // lecturas fuera de transacción
	movementRepo repository.StockMovementRepository // lecturas de bitácora fuera de transacción
	unitRepo     repository.UnitRepository
	variantRepo  repository.VariantRepository
	locationRepo repository.LocationRepository
}

// NewLedgerUseCase construye el caso de uso del ledger.
func NewLedgerUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	unitRepo repository.UnitRepository,
	variantRepo repository.VariantRepository,
	locationRepo repository.LocationRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		unitRepo:     unitRepo,
		variantRepo:  variantRepo,
		locationRepo: locationRepo,
	}
}

// Available devuelve el stock actual en unidad base. Un par variante/sucursal
// sin fila aún responde cero, no error.
func (uc *LedgerUseCase) Available(ctx context.Context, variantID, locationID string) (*dto.StockResponse, error) {
	if variantID == "" || locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	variant, err := uc.getVariant(ctx, variantID)
	if err != nil {
		return nil, err
	}
	record, err := uc.stockRepo.Get(ctx, variantID, locationID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		VariantID:    variantID,
		LocationID:   locationID,
		QtyAvailable: record.QtyAvailable,
		BaseUnitID:   variant.UnitID,
		BelowAlert:   record.BelowAlert(),
	}, nil
}

// CheckAvailability convierte la cantidad solicitada a unidad base y la
// compara contra el stock actual. Predicado puro: no muta nada, sirve como
// pre-validación antes de confirmar una venta.
func (uc *LedgerUseCase) CheckAvailability(ctx context.Context, in dto.CheckAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	if in.VariantID == "" || in.LocationID == "" || in.UnitID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	variant, err := uc.getVariant(ctx, in.VariantID)
	if err != nil {
		return nil, err
	}
	requestedBase, base, err := uc.toBase(ctx, variant, in.Quantity, in.UnitID)
	if err != nil {
		return nil, err
	}
	record, err := uc.stockRepo.Get(ctx, in.VariantID, in.LocationID)
	if err != nil {
		return nil, err
	}

	shortfall := decimal.Zero
	if requestedBase.GreaterThan(record.QtyAvailable) {
		shortfall = requestedBase.Sub(record.QtyAvailable)
	}
	return &dto.AvailabilityResponse{
		Sufficient: shortfall.IsZero(),
		Available:  record.QtyAvailable,
		Requested:  requestedBase,
		Shortfall:  shortfall,
		BaseUnitID: base.ID,
	}, nil
}

// Adjust aplica un ajuste atómico al ledger: convierte el delta a unidad base
// y lo aplica como incremento en el storage junto con su movimiento de
// bitácora, en una transacción. En decrease la fila se bloquea primero para
// verificar el piso (salvo AllowNegative explícito); en insuficiencia devuelve
// InsufficientStockError con disponible y solicitado, nunca un "éxito con
// efecto cero".
func (uc *LedgerUseCase) Adjust(ctx context.Context, in dto.AdjustStockRequest, userID string) (*dto.AdjustStockResponse, error) {
	if in.VariantID == "" || in.LocationID == "" || in.UnitID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Direction != entity.AdjustIncrease && in.Direction != entity.AdjustDecrease {
		return nil, domain.ErrInvalidInput
	}
	variant, err := uc.getVariant(ctx, in.VariantID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkLocation(ctx, in.LocationID); err != nil {
		return nil, err
	}
	deltaBase, _, err := uc.toBase(ctx, variant, in.Quantity, in.UnitID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var resp *dto.AdjustStockResponse
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		signed := deltaBase
		movType := entity.MovementTypeIncrease
		if in.Direction == entity.AdjustDecrease {
			// El piso se verifica con la fila bloqueada: ningún otro decrease
			// puede pasar el chequeo contra la misma fila hasta el Commit.
			record, err := stockRepo.GetForUpdate(ctx, in.VariantID, in.LocationID)
			if err != nil {
				return err
			}
			if !in.AllowNegative && record.QtyAvailable.LessThan(deltaBase) {
				return &domain.InsufficientStockError{
					Available: record.QtyAvailable,
					Requested: deltaBase,
				}
			}
			signed = deltaBase.Neg()
			movType = entity.MovementTypeDecrease
		}

		// Increase no necesita leer: el delta se aplica en el storage, así dos
		// incrementos concurrentes (incluida la primera materialización de la
		// fila) se acumulan en vez de pisarse.
		record, err := stockRepo.ApplyDelta(ctx, in.VariantID, in.LocationID, signed)
		if err != nil {
			return err
		}
		if err := movementRepo.Create(ctx, &entity.StockMovement{
			ID:            uuid.New().String(),
			Reference:     in.Reference,
			VariantID:     in.VariantID,
			LocationID:    in.LocationID,
			Type:          movType,
			Quantity:      signed,
			EnteredQty:    in.Quantity,
			EnteredUnitID: in.UnitID,
			CreatedAt:     now,
			CreatedBy:     userID,
		}); err != nil {
			return err
		}

		resp = &dto.AdjustStockResponse{
			NewQtyAvailable: record.QtyAvailable,
			BaseUnitID:      variant.UnitID,
			BelowAlert:      record.BelowAlert(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Transfer resta en la sucursal origen y suma en la destino como una sola
// unidad lógica: ambos ajustes confirman o ninguno. Un traslado nunca admite
// stock negativo en el origen.
func (uc *LedgerUseCase) Transfer(ctx context.Context, in dto.TransferStockRequest, userID string) error {
	if in.VariantID == "" || in.FromLocationID == "" || in.ToLocationID == "" || in.UnitID == "" {
		return domain.ErrInvalidInput
	}
	if in.FromLocationID == in.ToLocationID || !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	variant, err := uc.getVariant(ctx, in.VariantID)
	if err != nil {
		return err
	}
	if err := uc.checkLocation(ctx, in.FromLocationID); err != nil {
		return err
	}
	if err := uc.checkLocation(ctx, in.ToLocationID); err != nil {
		return err
	}
	deltaBase, _, err := uc.toBase(ctx, variant, in.Quantity, in.UnitID)
	if err != nil {
		return err
	}

	now := time.Now()
	reference := in.Reference
	if reference == "" {
		reference = uuid.New().String()
	}
	return uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		origin, err := stockRepo.GetForUpdate(ctx, in.VariantID, in.FromLocationID)
		if err != nil {
			return err
		}
		if origin.QtyAvailable.LessThan(deltaBase) {
			return &domain.InsufficientStockError{
				Available: origin.QtyAvailable,
				Requested: deltaBase,
			}
		}

		if _, err := stockRepo.ApplyDelta(ctx, in.VariantID, in.FromLocationID, deltaBase.Neg()); err != nil {
			return err
		}
		// El destino no se lee: el incremento se aplica como delta en el
		// storage, así un ajuste concurrente sobre la misma fila destino no se
		// pierde. Solo el origen toma bloqueo de fila (una sola fila bloqueada
		// por traslado, sin orden de bloqueo que pueda interbloquearse).
		if _, err := stockRepo.ApplyDelta(ctx, in.VariantID, in.ToLocationID, deltaBase); err != nil {
			return err
		}

		// Dos asientos en bitácora: salida en origen, entrada en destino.
		out := &entity.StockMovement{
			ID:            uuid.New().String(),
			Reference:     reference,
			VariantID:     in.VariantID,
			LocationID:    in.FromLocationID,
			Type:          entity.MovementTypeTransfer,
			Quantity:      deltaBase.Neg(),
			EnteredQty:    in.Quantity,
			EnteredUnitID: in.UnitID,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		if err := movementRepo.Create(ctx, out); err != nil {
			return err
		}
		inMov := &entity.StockMovement{
			ID:            uuid.New().String(),
			Reference:     reference,
			VariantID:     in.VariantID,
			LocationID:    in.ToLocationID,
			Type:          entity.MovementTypeTransfer,
			Quantity:      deltaBase,
			EnteredQty:    in.Quantity,
			EnteredUnitID: in.UnitID,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		return movementRepo.Create(ctx, inMov)
	})
}

// Movements consulta la bitácora filtrando por variante o por sucursal
// (exactamente uno), con rango de fechas opcional y paginación.
func (uc *LedgerUseCase) Movements(ctx context.Context, q dto.MovementQuery) ([]dto.MovementResponse, error) {
	if (q.VariantID == "") == (q.LocationID == "") {
		return nil, domain.ErrInvalidInput
	}
	q.DefaultPage()

	var (
		movements []*entity.StockMovement
		err       error
	)
	if q.VariantID != "" {
		movements, err = uc.movementRepo.ListByVariant(ctx, q.VariantID, q.From, q.To, q.Limit, q.Offset)
	} else {
		movements, err = uc.movementRepo.ListByLocation(ctx, q.LocationID, q.From, q.To, q.Limit, q.Offset)
	}
	if err != nil {
		return nil, err
	}

	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:            m.ID,
			Reference:     m.Reference,
			VariantID:     m.VariantID,
			LocationID:    m.LocationID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			EnteredQty:    m.EnteredQty,
			EnteredUnitID: m.EnteredUnitID,
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
		})
	}
	return out, nil
}

// getVariant valida existencia de la variante.
func (uc *LedgerUseCase) getVariant(ctx context.Context, variantID string) (*entity.Variant, error) {
	variant, err := uc.variantRepo.GetByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	return variant, nil
}

// checkLocation valida existencia de la sucursal.
func (uc *LedgerUseCase) checkLocation(ctx context.Context, locationID string) error {
	location, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrNotFound
	}
	return nil
}

// toBase convierte una cantidad desde la unidad de la línea a la unidad base
// de la variante. Rechaza fracciones en unidades que no las admiten.
func (uc *LedgerUseCase) toBase(ctx context.Context, variant *entity.Variant, qty decimal.Decimal, unitID string) (decimal.Decimal, *entity.Unit, error) {
	base, err := uc.unitRepo.GetByID(ctx, variant.UnitID)
	if err != nil {
		return decimal.Zero, nil, err
	}
	if base == nil {
		return decimal.Zero, nil, domain.ErrNotFound
	}
	from := base
	if unitID != base.ID {
		from, err = uc.unitRepo.GetByID(ctx, unitID)
		if err != nil {
			return decimal.Zero, nil, err
		}
		if from == nil {
			return decimal.Zero, nil, domain.ErrNotFound
		}
	}
	if !from.AllowsFractional && !qty.IsInteger() {
		return decimal.Zero, nil, domain.ErrInvalidInput
	}
	converted, err := units.Convert(qty, from, base)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return converted, base, nil
}
