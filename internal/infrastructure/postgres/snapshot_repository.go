package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo implementación de SnapshotRepository sobre PostgreSQL
// (usable con pool o tx).
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

// Get obtiene la cantidad actual de una llave; base en cero si no existe fila.
func (r *SnapshotRepo) Get(ctx context.Context, skuID, locationID int64) (*entity.Snapshot, error) {
	query := `
		SELECT sku_id, location_id, quantity, updated_at
		FROM snapshots WHERE sku_id = $1 AND location_id = $2`
	var s entity.Snapshot
	err := r.q.QueryRow(ctx, query, skuID, locationID).Scan(
		&s.SKUID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Snapshot{SKUID: skuID, LocationID: locationID}, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return &s, nil
}

// EnsureRow crea la fila en cero si no existe, para que siempre haya algo que
// bloquear con FOR UPDATE.
func (r *SnapshotRepo) EnsureRow(ctx context.Context, skuID, locationID int64) error {
	query := `
		INSERT INTO snapshots (sku_id, location_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (sku_id, location_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, skuID, locationID); err != nil {
		return fmt.Errorf("ensure snapshot row: %w", err)
	}
	return nil
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE). La espera
// está acotada por el lock_timeout de la transacción.
func (r *SnapshotRepo) GetForUpdate(ctx context.Context, skuID, locationID int64) (*entity.Snapshot, error) {
	query := `
		SELECT sku_id, location_id, quantity, updated_at
		FROM snapshots WHERE sku_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.Snapshot
	err := r.q.QueryRow(ctx, query, skuID, locationID).Scan(
		&s.SKUID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Snapshot{SKUID: skuID, LocationID: locationID}, nil
		}
		return nil, fmt.Errorf("get snapshot for update: %w", err)
	}
	return &s, nil
}

// Update escribe la cantidad de una fila ya bloqueada por el caller.
func (r *SnapshotRepo) Update(ctx context.Context, snapshot *entity.Snapshot) error {
	query := `
		UPDATE snapshots SET quantity = $3, updated_at = now()
		WHERE sku_id = $1 AND location_id = $2`
	if _, err := r.q.Exec(ctx, query, snapshot.SKUID, snapshot.LocationID, snapshot.Quantity); err != nil {
		return fmt.Errorf("update snapshot: %w", err)
	}
	return nil
}

// GuardedDecrement resta condicionalmente: la verificación de saldo y la
// resta son el mismo UPDATE. Sin fila afectada = saldo insuficiente.
func (r *SnapshotRepo) GuardedDecrement(ctx context.Context, skuID, locationID, qty int64) (int64, bool, error) {
	query := `
		UPDATE snapshots
		SET quantity = quantity - $3, updated_at = now()
		WHERE sku_id = $1 AND location_id = $2 AND quantity >= $3
		RETURNING quantity`
	var newQty int64
	err := r.q.QueryRow(ctx, query, skuID, locationID, qty).Scan(&newQty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("guarded decrement: %w", err)
	}
	return newQty, true, nil
}

// Increment suma qty a la llave (la fila debe existir; ver EnsureRow).
func (r *SnapshotRepo) Increment(ctx context.Context, skuID, locationID, qty int64) (int64, error) {
	query := `
		UPDATE snapshots
		SET quantity = quantity + $3, updated_at = now()
		WHERE sku_id = $1 AND location_id = $2
		RETURNING quantity`
	var newQty int64
	if err := r.q.QueryRow(ctx, query, skuID, locationID, qty).Scan(&newQty); err != nil {
		return 0, fmt.Errorf("increment snapshot: %w", err)
	}
	return newQty, nil
}

// ListBySKU lista el stock del SKU en todas las ubicaciones.
func (r *SnapshotRepo) ListBySKU(ctx context.Context, skuID int64) ([]*entity.Snapshot, error) {
	return r.list(ctx, `SELECT sku_id, location_id, quantity, updated_at FROM snapshots WHERE sku_id = $1 ORDER BY location_id`, skuID)
}

// ListByLocation lista el stock de todos los SKUs en una ubicación.
func (r *SnapshotRepo) ListByLocation(ctx context.Context, locationID int64) ([]*entity.Snapshot, error) {
	return r.list(ctx, `SELECT sku_id, location_id, quantity, updated_at FROM snapshots WHERE location_id = $1 ORDER BY sku_id`, locationID)
}

func (r *SnapshotRepo) list(ctx context.Context, query string, arg any) ([]*entity.Snapshot, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()
	var list []*entity.Snapshot
	for rows.Next() {
		var s entity.Snapshot
		if err := rows.Scan(&s.SKUID, &s.LocationID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SumBySKU devuelve SUM(quantity) del SKU en todas las ubicaciones.
func (r *SnapshotRepo) SumBySKU(ctx context.Context, skuID int64) (int64, error) {
	var sum int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM snapshots WHERE sku_id = $1`,
		skuID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum snapshots by sku: %w", err)
	}
	return sum, nil
}

// ForceQuantity fija la cantidad sin pasar por el motor de movimientos.
// Reservado para la corrección de reconciliación.
func (r *SnapshotRepo) ForceQuantity(ctx context.Context, skuID, locationID, qty int64) error {
	query := `
		INSERT INTO snapshots (sku_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (sku_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, skuID, locationID, qty); err != nil {
		return fmt.Errorf("force snapshot quantity: %w", err)
	}
	return nil
}
