package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/TPBCanada/InventoryApp-sub000/internal/domain"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var _ repository.SKURepository = (*SKURepo)(nil)

// SKURepo implementación de SKURepository sobre PostgreSQL (usable con pool o tx).
type SKURepo struct {
	q Querier
}

// NewSKURepository construye el adaptador. Pasar pool o tx (Querier).
func NewSKURepository(q Querier) *SKURepo {
	return &SKURepo{q: q}
}

const skuColumns = `id, code, name, avg_cost, total_quantity, active, created_at, updated_at`

// Create persiste un SKU nuevo (id lo asigna el servidor).
func (r *SKURepo) Create(ctx context.Context, sku *entity.SKU) error {
	query := `
		INSERT INTO skus (code, name, active)
		VALUES ($1, $2, $3)
		RETURNING id, avg_cost, total_quantity, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, sku.Code, sku.Name, sku.Active).Scan(
		&sku.ID, &sku.AvgCost, &sku.TotalQuantity, &sku.CreatedAt, &sku.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create sku: %w", err)
	}
	return nil
}

// GetByID obtiene un SKU por id; nil si no existe.
func (r *SKURepo) GetByID(ctx context.Context, id int64) (*entity.SKU, error) {
	return r.get(ctx, `SELECT `+skuColumns+` FROM skus WHERE id = $1`, id)
}

// GetByCode obtiene un SKU por código; nil si no existe.
func (r *SKURepo) GetByCode(ctx context.Context, code string) (*entity.SKU, error) {
	return r.get(ctx, `SELECT `+skuColumns+` FROM skus WHERE code = $1`, code)
}

func (r *SKURepo) get(ctx context.Context, query string, arg any) (*entity.SKU, error) {
	var s entity.SKU
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&s.ID, &s.Code, &s.Name, &s.AvgCost, &s.TotalQuantity, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sku: %w", err)
	}
	return &s, nil
}

// List lista SKUs por código.
func (r *SKURepo) List(ctx context.Context, limit, offset int) ([]*entity.SKU, error) {
	query := `SELECT ` + skuColumns + ` FROM skus ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list skus: %w", err)
	}
	defer rows.Close()
	var list []*entity.SKU
	for rows.Next() {
		var s entity.SKU
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.AvgCost, &s.TotalQuantity, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sku: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateCost actualiza el costo promedio ponderado.
func (r *SKURepo) UpdateCost(ctx context.Context, id int64, cost decimal.Decimal) error {
	if _, err := r.q.Exec(ctx, `UPDATE skus SET avg_cost = $2, updated_at = now() WHERE id = $1`, id, cost); err != nil {
		return fmt.Errorf("update sku cost: %w", err)
	}
	return nil
}

// AddToTotal suma delta al total denormalizado del SKU.
func (r *SKURepo) AddToTotal(ctx context.Context, id int64, delta int64) error {
	if _, err := r.q.Exec(ctx, `UPDATE skus SET total_quantity = total_quantity + $2, updated_at = now() WHERE id = $1`, id, delta); err != nil {
		return fmt.Errorf("add to sku total: %w", err)
	}
	return nil
}

// SetTotal fija el total denormalizado (corrección de reconciliación).
func (r *SKURepo) SetTotal(ctx context.Context, id int64, total int64) error {
	if _, err := r.q.Exec(ctx, `UPDATE skus SET total_quantity = $2, updated_at = now() WHERE id = $1`, id, total); err != nil {
		return fmt.Errorf("set sku total: %w", err)
	}
	return nil
}
