package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord representa el stock actual de una variante en una sucursal.
// QtyAvailable está SIEMPRE en la unidad base de la variante; toda aritmética
// entre unidades pasa por el grafo de unidades antes de tocar este registro.
// La fila se crea implícitamente en el primer movimiento (default 0) y nunca
// se borra, solo se lleva a cero.
type StockRecord struct {
	VariantID      string
	LocationID     string
	QtyAvailable   decimal.Decimal
	AlertThreshold decimal.Decimal
	UpdatedAt      time.Time
}

// BelowAlert indica si el stock quedó en o bajo el umbral de alerta.
func (s *StockRecord) BelowAlert() bool {
	if s.AlertThreshold.IsZero() {
		return false
	}
	return s.QtyAvailable.LessThanOrEqual(s.AlertThreshold)
}
