package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
// Todos son recuperables: se devuelven a la capa de transacciones, que decide
// si aborta la venta/compra/pago o pide corrección. Ninguno se reintenta aquí.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// ErrIncompatibleUnits: las dos unidades no comparten relación base/sub directa.
	// El grafo de unidades es de dos niveles; no se resuelven cadenas transitivas.
	ErrIncompatibleUnits = errors.New("unidades incompatibles: no comparten unidad base directa")

	// ErrInvalidUnitDefinition: multiplicador cero/negativo o par base/multiplicador a medias.
	// Es un error de integridad del catálogo, nunca se corrige silenciosamente.
	ErrInvalidUnitDefinition = errors.New("definición de unidad inválida")

	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrInvalidPaymentAmount = errors.New("monto de pago inválido: debe ser mayor que cero")

	// ErrConcurrencyConflict: la escritura atómica detectó una mutación concurrente.
	// Nada quedó confirmado; el caller puede reintentar con lecturas frescas.
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia: reintentar con lecturas frescas")
)

// InsufficientStockError detalla disponible vs solicitado (ambos en unidad base)
// para que el operador pueda reducir la cantidad o elegir otra sucursal.
type InsufficientStockError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %s, solicitado %s", e.Available, e.Requested)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Shortfall cantidad faltante en unidad base.
func (e *InsufficientStockError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}
