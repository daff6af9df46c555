package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/TPBCanada/InventoryApp-sub000/internal/domain"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/inventory"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
	"github.com/TPBCanada/InventoryApp-sub000/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Engine aplica cambios de cantidad con firma (movimientos) de forma
// transaccional: bloqueo por llave (sku, ubicación), verificación de no
// negatividad y doble escritura atómica snapshot + libro.
type Engine struct {
	txRunner     TxRunner
	skuRepo      repository.SKURepository
	locationRepo repository.LocationRepository
	metrics      *metrics.InventoryMetrics
}

// NewEngine construye el motor de movimientos.
func NewEngine(
	txRunner TxRunner,
	skuRepo repository.SKURepository,
	locationRepo repository.LocationRepository,
	m *metrics.InventoryMetrics,
) *Engine {
	return &Engine{
		txRunner:     txRunner,
		skuRepo:      skuRepo,
		locationRepo: locationRepo,
		metrics:      m,
	}
}

// ApplyInput entrada para aplicar un movimiento a una llave.
// QuantityChange es con signo: positivo entrada, negativo salida. El signo es
// independiente del Kind (un ADJUSTMENT puede ser negativo).
type ApplyInput struct {
	SKUID          int64
	LocationID     int64
	QuantityChange int64
	Kind           string
	Actor          string // vacío = movimiento del sistema (NULL en el libro)
	Reference      string
	UnitCost       *decimal.Decimal // costo unitario de compra en entradas (opcional)
}

// Apply ejecuta un movimiento como una sola transacción: bloquea la fila del
// snapshot (creándola en cero si no existe), verifica que la resta no deje
// saldo negativo, actualiza el snapshot y agrega la fila al libro. O ambas
// escrituras quedan confirmadas o ninguna. Devuelve el nuevo saldo de la llave.
func (e *Engine) Apply(ctx context.Context, input ApplyInput) (int64, error) {
	if input.QuantityChange == 0 || !entity.ValidMovementKind(input.Kind) {
		return 0, domain.ErrInvalidInput
	}
	sku, _, err := e.resolveRefs(ctx, input.SKUID, input.LocationID)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	var newBalance int64
	err = e.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		snapRepo repository.SnapshotRepository,
		skuRepo repository.SKURepository,
	) error {
		bal, err := e.applyInTx(ctx, movRepo, snapRepo, skuRepo, sku, input, now, uuid.New().String())
		if err != nil {
			return err
		}
		newBalance = bal
		return nil
	})
	if err != nil {
		if err == domain.ErrInsufficientStock {
			e.metrics.IncInsufficientStock()
		}
		return 0, err
	}
	e.metrics.IncMovement(input.Kind)
	return newBalance, nil
}

// applyInTx es el cuerpo del movimiento dentro de la transacción del caller.
// La verificación y la escritura son una sola sección crítica bajo el bloqueo
// de fila; nunca dos viajes separados.
func (e *Engine) applyInTx(
	ctx context.Context,
	movRepo repository.MovementRepository,
	snapRepo repository.SnapshotRepository,
	skuRepo repository.SKURepository,
	sku *entity.SKU,
	input ApplyInput,
	now time.Time,
	txID string,
) (int64, error) {
	// La fila debe existir para poder bloquearla (base en cero si es primera vez)
	if err := snapRepo.EnsureRow(ctx, input.SKUID, input.LocationID); err != nil {
		return 0, err
	}
	snap, err := snapRepo.GetForUpdate(ctx, input.SKUID, input.LocationID)
	if err != nil {
		return 0, err
	}
	newQty := snap.Quantity + input.QuantityChange
	if newQty < 0 {
		return 0, domain.ErrInsufficientStock
	}
	snap.Quantity = newQty
	snap.UpdatedAt = now
	if err := snapRepo.Update(ctx, snap); err != nil {
		return 0, err
	}

	// Releer el SKU dentro de la tx: costo promedio y total denormalizado vigentes
	current, err := skuRepo.GetByID(ctx, sku.ID)
	if err != nil {
		return 0, err
	}
	if current == nil {
		return 0, domain.ErrUnknownSKU
	}
	unitCost := current.AvgCost
	if input.QuantityChange > 0 && input.UnitCost != nil {
		unitCost = *input.UnitCost
		newCost := inventory.CostCalculator(current.TotalQuantity, current.AvgCost, input.QuantityChange, unitCost)
		if err := skuRepo.UpdateCost(ctx, sku.ID, newCost); err != nil {
			return 0, err
		}
	}
	if err := skuRepo.AddToTotal(ctx, sku.ID, input.QuantityChange); err != nil {
		return 0, err
	}

	mov := &entity.Movement{
		TransactionID:  txID,
		SKUID:          input.SKUID,
		LocationID:     input.LocationID,
		Kind:           input.Kind,
		QuantityChange: input.QuantityChange,
		UnitCost:       unitCost,
		TotalCost:      unitCost.Mul(decimal.NewFromInt(input.QuantityChange)),
		Reference:      input.Reference,
		Actor:          actorOrNil(input.Actor),
		CreatedAt:      now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return 0, err
	}
	return newQty, nil
}

// Receive registra una entrada (IN, cantidad positiva).
func (e *Engine) Receive(ctx context.Context, skuID, locationID, quantity int64, actor, note string, unitCost *decimal.Decimal) (int64, error) {
	if quantity <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return e.Apply(ctx, ApplyInput{
		SKUID:          skuID,
		LocationID:     locationID,
		QuantityChange: quantity,
		Kind:           entity.MovementKindIN,
		Actor:          actor,
		Reference:      note,
		UnitCost:       unitCost,
	})
}

// Issue registra una salida (OUT, cantidad negativa en el libro).
func (e *Engine) Issue(ctx context.Context, skuID, locationID, quantity int64, actor, note string) (int64, error) {
	if quantity <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return e.Apply(ctx, ApplyInput{
		SKUID:          skuID,
		LocationID:     locationID,
		QuantityChange: -quantity,
		Kind:           entity.MovementKindOUT,
		Actor:          actor,
		Reference:      note,
	})
}

// Adjust registra un ajuste con signo decidido por el caller.
func (e *Engine) Adjust(ctx context.Context, skuID, locationID, signedQuantity int64, actor, note string) (int64, error) {
	return e.Apply(ctx, ApplyInput{
		SKUID:          skuID,
		LocationID:     locationID,
		QuantityChange: signedQuantity,
		Kind:           entity.MovementKindADJUSTMENT,
		Actor:          actor,
		Reference:      note,
	})
}

// resolveRefs valida que el SKU y la ubicación existan y estén activos.
func (e *Engine) resolveRefs(ctx context.Context, skuID, locationID int64) (*entity.SKU, *entity.Location, error) {
	sku, err := e.skuRepo.GetByID(ctx, skuID)
	if err != nil {
		return nil, nil, err
	}
	if sku == nil || !sku.Active {
		return nil, nil, domain.ErrUnknownSKU
	}
	location, err := e.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, nil, err
	}
	if location == nil || !location.Active {
		return nil, nil, domain.ErrUnknownLocation
	}
	return sku, location, nil
}

func actorOrNil(actor string) *string {
	if actor == "" {
		return nil
	}
	return &actor
}

// referenceForTransfer arma la referencia legible compartida por las dos
// patas de un traslado.
func referenceForTransfer(qty int64, skuCode, fromCode, toCode, actor string, at time.Time) string {
	who := actor
	if who == "" {
		who = "sistema"
	}
	return fmt.Sprintf("traslado de %d x %s de %s a %s por %s @ %s",
		qty, skuCode, fromCode, toCode, who, at.UTC().Format(time.RFC3339))
}
