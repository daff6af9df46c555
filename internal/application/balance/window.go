package balance

import (
	"context"

	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
)

// WindowRepository puerto para la consulta nativa con función de ventana
// (SUM ... OVER particionado por llave). Lo implementa el adaptador postgres.
type WindowRepository interface {
	ListWithRunningBalance(ctx context.Context, filter repository.MovementFilter) ([]*entity.MovementWithBalance, error)
}

// WindowStrategy delega el cálculo del saldo acumulado al motor de
// almacenamiento (ruta preferida cuando hay funciones de ventana).
type WindowStrategy struct {
	repo WindowRepository
}

// NewWindowStrategy construye la estrategia nativa.
func NewWindowStrategy(repo WindowRepository) *WindowStrategy {
	return &WindowStrategy{repo: repo}
}

// RunningBalance implementa Strategy.
func (s *WindowStrategy) RunningBalance(ctx context.Context, filter repository.MovementFilter) ([]*entity.MovementWithBalance, error) {
	return s.repo.ListWithRunningBalance(ctx, filter)
}
