package ledger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/TPBCanada/InventoryApp-sub000/internal/application/ledger"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildEngine arma un motor sobre el almacén en memoria con un SKU "A1" y
// dos ubicaciones activas.
func buildEngine(t *testing.T) (*ledger.Engine, *memStore) {
	t.Helper()
	store := newMemStore()
	store.addSKU(&entity.SKU{ID: 1, Code: "A1", Name: "Tornillo M4", Active: true})
	store.addLocation(&entity.Location{ID: 1, Row: 1, Bay: 2, Level: 3, Side: entity.SideFront, Active: true})
	store.addLocation(&entity.Location{ID: 2, Row: 4, Bay: 1, Level: 1, Side: entity.SideBack, Active: true})

	engine := ledger.NewEngine(
		newMemTxRunner(store),
		&memSKURepo{s: store},
		&memLocationRepo{s: store},
		nil, // métricas nil-safe
	)
	return engine, store
}

func TestReceive_EscribeLibroYSnapshot(t *testing.T) {
	engine, store := buildEngine(t)
	ctx := context.Background()

	balance, err := engine.Receive(ctx, 1, 1, 10, "ana", "compra #77", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)

	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, entity.MovementKindIN, mov.Kind)
	assert.Equal(t, int64(10), mov.QuantityChange)
	assert.NotEmpty(t, mov.TransactionID)
	require.NotNil(t, mov.Actor)
	assert.Equal(t, "ana", *mov.Actor)

	snap := store.snapshots[snapKey{1, 1}]
	require.NotNil(t, snap)
	assert.Equal(t, int64(10), snap.Quantity)
	assert.Equal(t, int64(10), store.skus[1].TotalQuantity)
}

func TestReceive_ActualizaCostoPromedioPonderado(t *testing.T) {
	engine, store := buildEngine(t)
	ctx := context.Background()

	costo10 := decimal.NewFromInt(10)
	costo20 := decimal.NewFromInt(20)

	_, err := engine.Receive(ctx, 1, 1, 10, "ana", "lote 1", &costo10)
	require.NoError(t, err)
	_, err = engine.Receive(ctx, 1, 1, 10, "ana", "lote 2", &costo20)
	require.NoError(t, err)

	// (10*10 + 10*20) / 20 = 15
	assert.True(t, store.skus[1].AvgCost.Equal(decimal.NewFromInt(15)),
		"costo promedio esperado 15, obtenido %s", store.skus[1].AvgCost)
}

func TestIssue_StockInsuficienteNoCambiaNada(t *testing.T) {
	engine, store := buildEngine(t)
	ctx := context.Background()

	_, err := engine.Receive(ctx, 1, 1, 5, "ana", "", nil)
	require.NoError(t, err)

	_, err = engine.Issue(ctx, 1, 1, 8, "beto", "pedido #9")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ni libro ni snapshot ni total del SKU cambiaron
	assert.Len(t, store.movements, 1)
	assert.Equal(t, int64(5), store.snapshots[snapKey{1, 1}].Quantity)
	assert.Equal(t, int64(5), store.skus[1].TotalQuantity)
}

func TestIssue_SaldoExactoQuedaEnCero(t *testing.T) {
	engine, store := buildEngine(t)
	ctx := context.Background()

	_, err := engine.Receive(ctx, 1, 1, 5, "ana", "", nil)
	require.NoError(t, err)

	balance, err := engine.Issue(ctx, 1, 1, 5, "ana", "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	// La fila del snapshot sigue existiendo en 0 (historial vivo)
	snap := store.snapshots[snapKey{1, 1}]
	require.NotNil(t, snap)
	assert.Equal(t, int64(0), snap.Quantity)
}

func TestAdjust_AceptaSignoNegativo(t *testing.T) {
	engine, store := buildEngine(t)
	ctx := context.Background()

	_, err := engine.Receive(ctx, 1, 1, 10, "ana", "", nil)
	require.NoError(t, err)

	balance, err := engine.Adjust(ctx, 1, 1, -3, "conteo", "conteo físico semanal")
	require.NoError(t, err)
	assert.Equal(t, int64(7), balance)
	assert.Equal(t, entity.MovementKindADJUSTMENT, store.movements[1].Kind)
	assert.Equal(t, int64(-3), store.movements[1].QuantityChange)
}

func TestAdjust_NegativoBajoElSaldoFalla(t *testing.T) {
	engine, _ := buildEngine(t)
	ctx := context.Background()

	_, err := engine.Receive(ctx, 1, 1, 2, "ana", "", nil)
	require.NoError(t, err)

	_, err = engine.Adjust(ctx, 1, 1, -5, "conteo", "")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApply_ValidaEntrada(t *testing.T) {
	engine, _ := buildEngine(t)
	ctx := context.Background()

	_, err := engine.Apply(ctx, ledger.ApplyInput{SKUID: 1, LocationID: 1, QuantityChange: 0, Kind: entity.MovementKindIN})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = engine.Apply(ctx, ledger.ApplyInput{SKUID: 1, LocationID: 1, QuantityChange: 5, Kind: "TEleport"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = engine.Receive(ctx, 1, 1, -4, "ana", "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "receive exige cantidad positiva")

	_, err = engine.Issue(ctx, 1, 1, 0, "ana", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "issue exige cantidad positiva")
}

func TestApply_ReferenciasDesconocidas(t *testing.T) {
	engine, store := buildEngine(t)
	ctx := context.Background()

	_, err := engine.Receive(ctx, 99, 1, 5, "ana", "", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownSKU)

	_, err = engine.Receive(ctx, 1, 99, 5, "ana", "", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownLocation)

	// Inactivo cuenta como desconocido
	store.skus[1].Active = false
	_, err = engine.Receive(ctx, 1, 1, 5, "ana", "", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownSKU)
}

func TestApply_ActorVacioQuedaNulo(t *testing.T) {
	engine, store := buildEngine(t)
	ctx := context.Background()

	_, err := engine.Receive(ctx, 1, 1, 5, "", "carga inicial", nil)
	require.NoError(t, err)
	assert.Nil(t, store.movements[0].Actor)
}

// TestIssue_ConcurrenciaUnSoloGanador reproduce la carrera clásica: 5 en mano
// y dos salidas simultáneas de 4. Exactamente una debe confirmar; la otra
// recibe stock insuficiente y el saldo final es 1, nunca -3.
func TestIssue_ConcurrenciaUnSoloGanador(t *testing.T) {
	engine, store := buildEngine(t)
	ctx := context.Background()

	_, err := engine.Receive(ctx, 1, 1, 5, "ana", "", nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.Issue(ctx, 1, 1, 4, "turno", "")
		}(i)
	}
	wg.Wait()

	var failed int
	for _, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			failed++
		}
	}
	assert.Equal(t, 1, failed, "exactamente una de las dos salidas debe fallar")
	assert.Equal(t, int64(1), store.snapshots[snapKey{1, 1}].Quantity)
}

// TestLibro_EquivaleAlSnapshot verifica tras una mezcla de operaciones que
// SUM(quantity_change) por llave coincide con la cantidad del snapshot.
func TestLibro_EquivaleAlSnapshot(t *testing.T) {
	engine, store := buildEngine(t)
	ctx := context.Background()

	_, err := engine.Receive(ctx, 1, 1, 10, "ana", "", nil)
	require.NoError(t, err)
	_, err = engine.Issue(ctx, 1, 1, 3, "beto", "")
	require.NoError(t, err)
	_, err = engine.Adjust(ctx, 1, 1, 5, "conteo", "")
	require.NoError(t, err)
	_, err = engine.Issue(ctx, 1, 1, 12, "beto", "") // deja la llave en cero exacto
	require.NoError(t, err)

	movRepo := &memMovementRepo{s: store}
	sum, err := movRepo.SumByKey(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, store.snapshots[snapKey{1, 1}].Quantity, sum)
	assert.Equal(t, int64(0), sum)
}
