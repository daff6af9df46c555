package repository

import (
	"context"

	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para ubicaciones
// físicas (datos de referencia de solo lectura para el núcleo contable).
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id int64) (*entity.Location, error)
	GetByCode(ctx context.Context, code string) (*entity.Location, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Location, error)
}
