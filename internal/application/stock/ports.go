package stock

import (
	"context"

	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el read-check-write del ledger
// y su bitácora confirmen juntos o no confirmen.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
