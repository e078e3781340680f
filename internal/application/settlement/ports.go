package settlement

import (
	"context"

	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el
// repositorio de transacciones atado a esa tx. La sección crítica
// "leer pendientes → calcular asignación → escribir paid_amount" debe vivir
// completa dentro de una sola transacción.
type TxRunner interface {
	RunSettlement(ctx context.Context, fn func(txRepo repository.TransactionRepository) error) error
}

// ContactLock candado obtenido para un contacto; liberar al terminar.
type ContactLock interface {
	Release(ctx context.Context) error
}

// ContactLocker serializa liquidaciones por contacto entre instancias del
// servicio (candado distribuido). Es complementario al bloqueo de filas en BD:
// evita que dos pagos concurrentes al mismo contacto compitan por las mismas
// filas. Puede ser nil; en ese caso el SELECT FOR UPDATE sigue garantizando
// que no haya doble aplicación.
type ContactLocker interface {
	Obtain(ctx context.Context, contactID string) (ContactLock, error)
}
