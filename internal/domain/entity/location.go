package entity

import "time"

// Location representa una sucursal o bodega donde se mantiene stock.
type Location struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
