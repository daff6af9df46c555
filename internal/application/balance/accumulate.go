package balance

import (
	"context"

	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
)

// AccumulateStrategy calcula los saldos acumulados en memoria: recorre el
// libro filtrado en orden ascendente por partición, acumula, e invierte para
// mostrar. Ruta de respaldo para motores sin funciones de ventana; produce
// exactamente los mismos saldos que WindowStrategy.
type AccumulateStrategy struct {
	movements repository.MovementRepository
}

// NewAccumulateStrategy construye la estrategia manual.
func NewAccumulateStrategy(movements repository.MovementRepository) *AccumulateStrategy {
	return &AccumulateStrategy{movements: movements}
}

// RunningBalance implementa Strategy.
func (s *AccumulateStrategy) RunningBalance(ctx context.Context, filter repository.MovementFilter) ([]*entity.MovementWithBalance, error) {
	// Traer todo el rango filtrado: la paginación se aplica sobre el orden de
	// presentación, después de acumular (igual que la ruta de ventana).
	unpaged := filter
	unpaged.Limit = 0
	unpaged.Offset = 0
	movs, err := s.movements.List(ctx, unpaged, true)
	if err != nil {
		return nil, err
	}

	type key struct{ skuID, locationID int64 }
	running := make(map[key]int64)
	out := make([]*entity.MovementWithBalance, 0, len(movs))
	for _, m := range movs {
		k := key{m.SKUID, m.LocationID}
		running[k] += m.QuantityChange
		out = append(out, &entity.MovementWithBalance{
			Movement:       *m,
			RunningBalance: running[k],
		})
	}

	// Invertir: recientes primero para la vista de auditoría
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}
