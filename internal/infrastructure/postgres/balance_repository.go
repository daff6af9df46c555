package postgres

import (
	"context"
	"fmt"

	"github.com/TPBCanada/InventoryApp-sub000/internal/application/balance"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
)

var _ balance.WindowRepository = (*BalanceRepo)(nil)

// BalanceRepo calcula el saldo acumulado con la función de ventana nativa de
// PostgreSQL. Debe producir exactamente los mismos saldos que la estrategia
// de acumulación manual sobre el mismo libro.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// ListWithRunningBalance devuelve movimientos filtrados con su saldo
// acumulado por llave (SUM OVER particionado, orden created_at/id) y los
// presenta recientes-primero. Los filtros se aplican antes de particionar.
func (r *BalanceRepo) ListWithRunningBalance(ctx context.Context, filter repository.MovementFilter) ([]*entity.MovementWithBalance, error) {
	where, args := buildMovementWhere(filter)
	query := `
		SELECT ` + prefixColumns("t.", movementColumns) + `, t.running_balance FROM (
			SELECT ` + prefixColumns("m.", movementColumns) + `,
				SUM(m.quantity_change) OVER (
					PARTITION BY m.sku_id, m.location_id
					ORDER BY m.created_at ASC, m.id ASC
				) AS running_balance
			FROM movements m` + where + `
		) t
		ORDER BY t.created_at DESC, t.id DESC`
	query, args = appendPagination(query, args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list running balance: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementWithBalance
	for rows.Next() {
		var m entity.MovementWithBalance
		if err := rows.Scan(
			&m.ID, &m.TransactionID, &m.SKUID, &m.LocationID, &m.Kind,
			&m.QuantityChange, &m.UnitCost, &m.TotalCost, &m.Reference, &m.Actor, &m.CreatedAt,
			&m.RunningBalance,
		); err != nil {
			return nil, fmt.Errorf("scan running balance: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
