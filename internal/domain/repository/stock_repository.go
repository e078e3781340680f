package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// StockRepository puerto para consultar/actualizar stock por variante+sucursal.
// Contrato: si no existe fila para el par, Get y GetForUpdate devuelven un
// registro con cantidad cero (no error); la fila se materializa en el primer
// ApplyDelta.
type StockRepository interface {
	Get(ctx context.Context, variantID, locationID string) (*entity.StockRecord, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) durante la transacción;
	// la serialización por fila se garantiza en el storage, no en memoria.
	GetForUpdate(ctx context.Context, variantID, locationID string) (*entity.StockRecord, error)
	// ApplyDelta suma delta a la cantidad de forma atómica en el storage,
	// materializando la fila si no existe. Nunca escribe un absoluto calculado
	// de una lectura previa: un incremento concurrente no puede perderse.
	// Devuelve el registro resultante.
	ApplyDelta(ctx context.Context, variantID, locationID string, delta decimal.Decimal) (*entity.StockRecord, error)
}
