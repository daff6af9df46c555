package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/TPBCanada/InventoryApp-sub000/internal/domain"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo INSERT y SELECT: el libro es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, transaction_id, sku_id, location_id, kind, quantity_change, unit_cost, total_cost, reference, actor, created_at`

// Create persiste un movimiento. El id secuencial y el timestamp los asigna
// el servidor; se devuelven en la entidad.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	query := `
		INSERT INTO movements (transaction_id, sku_id, location_id, kind, quantity_change, unit_cost, total_cost, reference, actor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		movement.TransactionID, movement.SKUID, movement.LocationID, movement.Kind,
		movement.QuantityChange, movement.UnitCost, movement.TotalCost,
		movement.Reference, movement.Actor,
	).Scan(&movement.ID, &movement.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por id.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List devuelve movimientos filtrados ordenados por (created_at, id).
// ascending=true para acumulación de saldos, false para vistas de auditoría.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter, ascending bool) ([]*entity.Movement, error) {
	query := `SELECT ` + prefixColumns("m.", movementColumns) + ` FROM movements m`
	where, args := buildMovementWhere(filter)
	query += where
	if ascending {
		query += " ORDER BY m.created_at ASC, m.id ASC"
	} else {
		query += " ORDER BY m.created_at DESC, m.id DESC"
	}
	query, args = appendPagination(query, args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// SumByKey devuelve SUM(quantity_change) para una llave (0 si no hay filas).
func (r *MovementRepo) SumByKey(ctx context.Context, skuID, locationID int64) (int64, error) {
	var sum int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity_change), 0) FROM movements WHERE sku_id = $1 AND location_id = $2`,
		skuID, locationID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum movements by key: %w", err)
	}
	return sum, nil
}

// SumBySKU devuelve SUM(quantity_change) del SKU en todas las ubicaciones.
func (r *MovementRepo) SumBySKU(ctx context.Context, skuID int64) (int64, error) {
	var sum int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity_change), 0) FROM movements WHERE sku_id = $1`,
		skuID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum movements by sku: %w", err)
	}
	return sum, nil
}

// buildMovementWhere arma el WHERE (y el JOIN a locations si se filtra por
// componentes estructurales) con argumentos posicionales.
func buildMovementWhere(filter repository.MovementFilter) (string, []any) {
	var (
		joins string
		conds []string
		args  []any
	)
	needJoin := filter.Row != nil || filter.Bay != nil || filter.Level != nil || filter.Side != nil
	if needJoin {
		joins = " JOIN locations l ON l.id = m.location_id"
	}
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.SKUID != nil {
		add("m.sku_id = $%d", *filter.SKUID)
	}
	if filter.LocationID != nil {
		add("m.location_id = $%d", *filter.LocationID)
	}
	if filter.Row != nil {
		add("l.row_num = $%d", *filter.Row)
	}
	if filter.Bay != nil {
		add("l.bay = $%d", *filter.Bay)
	}
	if filter.Level != nil {
		add("l.level = $%d", *filter.Level)
	}
	if filter.Side != nil {
		add("l.side = $%d", *filter.Side)
	}
	if filter.From != nil {
		add("m.created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("m.created_at <= $%d", *filter.To)
	}
	out := joins
	for i, c := range conds {
		if i == 0 {
			out += " WHERE " + c
		} else {
			out += " AND " + c
		}
	}
	return out, args
}

func appendPagination(query string, args []any, limit, offset int) (string, []any) {
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}

// prefixColumns antepone el alias de tabla a cada columna de la lista.
func prefixColumns(prefix, columns string) string {
	out := ""
	for i, c := range splitColumns(columns) {
		if i > 0 {
			out += ", "
		}
		out += prefix + c
	}
	return out
}

func splitColumns(columns string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(columns); i++ {
		if i == len(columns) || columns[i] == ',' {
			col := columns[start:i]
			for len(col) > 0 && col[0] == ' ' {
				col = col[1:]
			}
			if col != "" {
				out = append(out, col)
			}
			start = i + 1
		}
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovement(row rowScanner) (*entity.Movement, error) {
	var m entity.Movement
	if err := row.Scan(
		&m.ID, &m.TransactionID, &m.SKUID, &m.LocationID, &m.Kind,
		&m.QuantityChange, &m.UnitCost, &m.TotalCost, &m.Reference, &m.Actor, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}
