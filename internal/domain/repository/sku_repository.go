package repository

import (
	"context"

	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SKURepository define el puerto de persistencia para SKUs (datos de
// referencia; el núcleo solo los lee, salvo las columnas derivadas).
type SKURepository interface {
	Create(ctx context.Context, sku *entity.SKU) error
	GetByID(ctx context.Context, id int64) (*entity.SKU, error)
	GetByCode(ctx context.Context, code string) (*entity.SKU, error)
	List(ctx context.Context, limit, offset int) ([]*entity.SKU, error)
	// UpdateCost actualiza el costo promedio ponderado (columna derivada).
	UpdateCost(ctx context.Context, id int64, cost decimal.Decimal) error
	// AddToTotal suma delta al total denormalizado del SKU.
	AddToTotal(ctx context.Context, id int64, delta int64) error
	// SetTotal fija el total denormalizado (corrección de reconciliación).
	SetTotal(ctx context.Context, id int64, total int64) error
}
