package postgres

import (
	"context"
	"fmt"

	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
)

var _ repository.ReconciliationRepository = (*ReconciliationRepo)(nil)

// ReconciliationRepo lecturas agregadas para detección de deriva. Solo
// lectura: las correcciones pasan por los repos transaccionales.
type ReconciliationRepo struct {
	q Querier
}

// NewReconciliationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReconciliationRepository(q Querier) *ReconciliationRepo {
	return &ReconciliationRepo{q: q}
}

// KeyDrifts compara, por llave con al menos un movimiento, la suma del libro
// contra la cantidad del snapshot (0 si la fila no existe todavía).
func (r *ReconciliationRepo) KeyDrifts(ctx context.Context) ([]repository.KeyDrift, error) {
	query := `
		SELECT m.sku_id, m.location_id,
			COALESCE(s.quantity, 0) AS snapshot_qty,
			SUM(m.quantity_change) AS ledger_sum
		FROM movements m
		LEFT JOIN snapshots s ON s.sku_id = m.sku_id AND s.location_id = m.location_id
		GROUP BY m.sku_id, m.location_id, s.quantity
		ORDER BY m.sku_id, m.location_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("key drifts: %w", err)
	}
	defer rows.Close()
	var list []repository.KeyDrift
	for rows.Next() {
		var d repository.KeyDrift
		if err := rows.Scan(&d.SKUID, &d.LocationID, &d.SnapshotQty, &d.LedgerSum); err != nil {
			return nil, fmt.Errorf("scan key drift: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// SKUDrifts compara, por SKU con movimientos, el total denormalizado contra
// la suma de snapshots y la suma del libro.
func (r *ReconciliationRepo) SKUDrifts(ctx context.Context) ([]repository.SKUDrift, error) {
	query := `
		SELECT k.id, k.code, k.total_quantity,
			COALESCE(sn.sum_qty, 0) AS snapshot_sum,
			COALESCE(mv.sum_change, 0) AS ledger_sum
		FROM skus k
		JOIN (
			SELECT sku_id, SUM(quantity_change) AS sum_change
			FROM movements GROUP BY sku_id
		) mv ON mv.sku_id = k.id
		LEFT JOIN (
			SELECT sku_id, SUM(quantity) AS sum_qty
			FROM snapshots GROUP BY sku_id
		) sn ON sn.sku_id = k.id
		ORDER BY k.code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sku drifts: %w", err)
	}
	defer rows.Close()
	var list []repository.SKUDrift
	for rows.Next() {
		var d repository.SKUDrift
		if err := rows.Scan(&d.SKUID, &d.SKUCode, &d.TotalQuantity, &d.SnapshotSum, &d.LedgerSum); err != nil {
			return nil, fmt.Errorf("scan sku drift: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
