package balance

import (
	"context"
	"time"

	"github.com/TPBCanada/InventoryApp-sub000/internal/domain"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
)

// Strategy calcula el saldo acumulado por llave (sku, ubicación) sobre el
// libro filtrado, con filas recientes-primero para mostrar. Las dos
// implementaciones (ventana SQL y acumulación manual) deben producir saldos
// idénticos para el mismo libro.
type Strategy interface {
	RunningBalance(ctx context.Context, filter repository.MovementFilter) ([]*entity.MovementWithBalance, error)
}

// Filter filtros de la consulta de libro. Se aplican antes de particionar
// por llave, no después.
type Filter struct {
	SKUID      *int64
	SKUCode    *string
	LocationID *int64
	Row        *int
	Bay        *int
	Level      *int
	Side       *string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// Service consulta de solo lectura del libro con saldo acumulado. Cada
// llamada re-ejecuta contra los datos actuales; no guarda cursores.
type Service struct {
	strategy Strategy
	skuRepo  repository.SKURepository
}

// NewService construye el servicio con la estrategia elegida por capacidad
// del motor de almacenamiento (ver config DBWindowFunctions).
func NewService(strategy Strategy, skuRepo repository.SKURepository) *Service {
	return &Service{strategy: strategy, skuRepo: skuRepo}
}

// RunningBalance devuelve movimientos anotados con su saldo acumulado "hasta
// esa fila" en orden cronológico (created_at ASC, id ASC como desempate),
// presentados recientes-primero.
func (s *Service) RunningBalance(ctx context.Context, f Filter) ([]*entity.MovementWithBalance, error) {
	mf := repository.MovementFilter{
		SKUID:      f.SKUID,
		LocationID: f.LocationID,
		Row:        f.Row,
		Bay:        f.Bay,
		Level:      f.Level,
		Side:       f.Side,
		From:       f.From,
		To:         f.To,
		Limit:      f.Limit,
		Offset:     f.Offset,
	}
	if f.SKUCode != nil && *f.SKUCode != "" {
		sku, err := s.skuRepo.GetByCode(ctx, *f.SKUCode)
		if err != nil {
			return nil, err
		}
		if sku == nil {
			return nil, domain.ErrUnknownSKU
		}
		mf.SKUID = &sku.ID
	}
	return s.strategy.RunningBalance(ctx, mf)
}
