package entity

import "time"

// Variant representa una configuración vendible/almacenable de un producto
// (talla, color, etc.). UnitID es la unidad base en la que SIEMPRE se guarda
// su stock; las líneas de venta/compra pueden llegar en cualquier sub-unidad.
type Variant struct {
	ID        string
	ProductID string
	SKU       string
	Name      string
	UnitID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
