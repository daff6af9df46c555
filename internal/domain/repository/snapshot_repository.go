package repository

import (
	"context"

	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
)

// SnapshotRepository define el puerto para la cantidad actual por
// (sku, ubicación). Toda lectura-modificación-escritura debe hacerse dentro
// de una transacción con la fila bloqueada (GetForUpdate) o con una
// actualización condicional atómica (GuardedDecrement).
type SnapshotRepository interface {
	// Get devuelve la fila o una base en cero si no existe todavía.
	Get(ctx context.Context, skuID, locationID int64) (*entity.Snapshot, error)
	// EnsureRow crea la fila en cero si no existe (INSERT ... ON CONFLICT DO NOTHING),
	// de modo que GetForUpdate siempre tenga una fila que bloquear.
	EnsureRow(ctx context.Context, skuID, locationID int64) error
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) y la devuelve.
	GetForUpdate(ctx context.Context, skuID, locationID int64) (*entity.Snapshot, error)
	// Update escribe la cantidad (la fila debe estar bloqueada por el caller).
	Update(ctx context.Context, snapshot *entity.Snapshot) error
	// GuardedDecrement resta qty solo si la cantidad actual alcanza: la
	// verificación y la resta son un único UPDATE condicional. ok=false si
	// el saldo era insuficiente (ninguna fila afectada).
	GuardedDecrement(ctx context.Context, skuID, locationID, qty int64) (newQty int64, ok bool, err error)
	// Increment suma qty y devuelve la nueva cantidad.
	Increment(ctx context.Context, skuID, locationID, qty int64) (int64, error)
	ListBySKU(ctx context.Context, skuID int64) ([]*entity.Snapshot, error)
	ListByLocation(ctx context.Context, locationID int64) ([]*entity.Snapshot, error)
	// SumBySKU devuelve SUM(quantity) del SKU en todas las ubicaciones.
	SumBySKU(ctx context.Context, skuID int64) (int64, error)
	// ForceQuantity fija la cantidad sin pasar por el motor de movimientos.
	// Único caller permitido: la corrección de reconciliación.
	ForceQuantity(ctx context.Context, skuID, locationID, qty int64) error
}
