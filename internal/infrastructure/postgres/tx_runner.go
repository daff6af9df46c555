package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/TPBCanada/InventoryApp-sub000/internal/application/ledger"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con espera
// acotada por los bloqueos de fila (SET LOCAL lock_timeout).
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxRunner construye el runner con el pool y la espera máxima por llave.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration) *TxRunner {
	if lockTimeout <= 0 {
		lockTimeout = 3 * time.Second
	}
	return &TxRunner{pool: pool, lockTimeout: lockTimeout}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Un timeout esperando un bloqueo de fila se traduce a
// ErrLockTimeout; la cancelación del ctx aborta la transacción sin commit
// parcial.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	snapRepo repository.SnapshotRepository,
	skuRepo repository.SKURepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("set lock_timeout: %w", err)
	}

	movRepo := NewMovementRepository(tx)
	snapRepo := NewSnapshotRepository(tx)
	skuRepo := NewSKURepository(tx)

	if err := fn(movRepo, snapRepo, skuRepo); err != nil {
		if isLockNotAvailable(err) {
			return domain.ErrLockTimeout
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
