package balance_test

import (
	"context"
	"testing"

	"github.com/TPBCanada/InventoryApp-sub000/internal/application/balance"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindowRepo imita lo que hace la consulta de ventana del motor: suma
// particionada por llave en orden cronológico, presentación reciente-primero.
// Ojo: esto prueba el contrato de la estrategia, no el SQL real de
// BalanceRepo (SUM() OVER); ese camino solo se ejercita contra PostgreSQL.
type fakeWindowRepo struct {
	ledger *fakeLedger
}

func (f *fakeWindowRepo) ListWithRunningBalance(ctx context.Context, filter repository.MovementFilter) ([]*entity.MovementWithBalance, error) {
	unpaged := filter
	unpaged.Limit = 0
	unpaged.Offset = 0
	movs, err := f.ledger.List(ctx, unpaged, true)
	if err != nil {
		return nil, err
	}
	type k struct{ sku, loc int64 }
	running := make(map[k]int64)
	out := make([]*entity.MovementWithBalance, 0, len(movs))
	for _, m := range movs {
		running[k{m.SKUID, m.LocationID}] += m.QuantityChange
		out = append(out, &entity.MovementWithBalance{Movement: *m, RunningBalance: running[k{m.SKUID, m.LocationID}]})
	}
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

// TestEstrategias_SaldosIdenticos corre las dos estrategias sobre el mismo
// libro y exige filas y saldos idénticos: el flag de configuración cambia el
// mecanismo, nunca el resultado.
func TestEstrategias_SaldosIdenticos(t *testing.T) {
	ledger := fixtureLedger()
	window := balance.NewWindowStrategy(&fakeWindowRepo{ledger: ledger})
	manual := balance.NewAccumulateStrategy(ledger)

	filters := []repository.MovementFilter{
		{},
		{Limit: 2},
		{Limit: 2, Offset: 1},
	}
	for _, filter := range filters {
		fromWindow, err := window.RunningBalance(context.Background(), filter)
		require.NoError(t, err)
		fromManual, err := manual.RunningBalance(context.Background(), filter)
		require.NoError(t, err)

		require.Equal(t, len(fromWindow), len(fromManual))
		for i := range fromWindow {
			assert.Equal(t, fromWindow[i].ID, fromManual[i].ID)
			assert.Equal(t, fromWindow[i].RunningBalance, fromManual[i].RunningBalance)
		}
	}
}
