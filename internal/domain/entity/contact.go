package entity

import "time"

// Tipos de contacto.
const (
	ContactTypeCustomer = "customer"
	ContactTypeSupplier = "supplier"
	ContactTypeBoth     = "both"
)

// Contact representa un cliente y/o proveedor contra el que existen
// transacciones pendientes de pago.
type Contact struct {
	ID        string
	Name      string
	Type      string // customer, supplier, both
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanSettle indica si el contacto admite liquidar transacciones del tipo dado.
// Un contacto "both" requiere que el caller indique explícitamente el lado a
// liquidar; nunca se infiere del contenido de las transacciones.
func (c *Contact) CanSettle(kind string) bool {
	switch kind {
	case TransactionKindSale:
		return c.Type == ContactTypeCustomer || c.Type == ContactTypeBoth
	case TransactionKindPurchase:
		return c.Type == ContactTypeSupplier || c.Type == ContactTypeBoth
	}
	return false
}
