package repository

import (
	"context"
	"time"

	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
)

// MovementFilter filtra el libro de movimientos. Los filtros se aplican antes
// de particionar por llave (sku, ubicación) al calcular saldos acumulados.
type MovementFilter struct {
	SKUID      *int64
	LocationID *int64
	// Componentes estructurales de la ubicación (se resuelven con JOIN a locations).
	Row   *int
	Bay   *int
	Level *int
	Side  *string
	From  *time.Time
	To    *time.Time
	Limit  int
	Offset int
}

// MovementRepository define el puerto de persistencia para el libro de
// movimientos. Append-only: no existe Update ni Delete.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id int64) (*entity.Movement, error)
	// List devuelve movimientos ordenados por (created_at, id); ascending=true
	// para el cálculo manual de saldos, false para vistas recientes-primero.
	List(ctx context.Context, filter MovementFilter, ascending bool) ([]*entity.Movement, error)
	// SumByKey devuelve SUM(quantity_change) para una llave (verdad del libro).
	SumByKey(ctx context.Context, skuID, locationID int64) (int64, error)
	// SumBySKU devuelve SUM(quantity_change) del SKU en todas las ubicaciones.
	SumBySKU(ctx context.Context, skuID int64) (int64, error)
}
