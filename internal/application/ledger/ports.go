package ledger

import (
	"context"

	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la actualización del snapshot y
// el append al libro se confirmen juntos o ninguno (atomicidad del motor).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		snapRepo repository.SnapshotRepository,
		skuRepo repository.SKURepository,
	) error) error
}
