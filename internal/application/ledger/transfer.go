package ledger

import (
	"context"
	"time"

	"github.com/TPBCanada/InventoryApp-sub000/internal/domain"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferInput entrada para un traslado entre dos ubicaciones.
type TransferInput struct {
	SKUID            int64
	SourceLocationID int64
	DestLocationID   int64
	Quantity         int64 // > 0
	Actor            string
}

// TransferResult saldos resultantes de un traslado confirmado.
type TransferResult struct {
	TransactionID string
	Reference     string
	SourceBalance int64
	DestBalance   int64
}

// Transfer mueve cantidad de una ubicación a otra como una sola operación
// todo-o-nada: resta guardada en el origen (el UPDATE condicional es la
// verificación, no un read-then-write aparte), suma en el destino y dos filas
// en el libro con la misma referencia y transaction_id. La cantidad total del
// SKU en todas las ubicaciones no cambia en un traslado exitoso.
func (e *Engine) Transfer(ctx context.Context, input TransferInput) (TransferResult, error) {
	var result TransferResult
	if input.Quantity <= 0 || input.SourceLocationID == input.DestLocationID {
		return result, domain.ErrInvalidTransfer
	}
	sku, err := e.skuRepo.GetByID(ctx, input.SKUID)
	if err != nil {
		return result, err
	}
	if sku == nil || !sku.Active {
		return result, domain.ErrUnknownSKU
	}
	source, err := e.locationRepo.GetByID(ctx, input.SourceLocationID)
	if err != nil {
		return result, err
	}
	dest, err := e.locationRepo.GetByID(ctx, input.DestLocationID)
	if err != nil {
		return result, err
	}
	if source == nil || !source.Active || dest == nil || !dest.Active {
		return result, domain.ErrUnknownLocation
	}

	now := time.Now()
	txID := uuid.New().String()
	reference := referenceForTransfer(input.Quantity, sku.Code, source.Code, dest.Code, input.Actor, now)

	err = e.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		snapRepo repository.SnapshotRepository,
		skuRepo repository.SKURepository,
	) error {
		// Toda adquisición de bloqueo sobre las dos llaves va en orden
		// ascendente por location_id, sin importar cuál es origen y cuál
		// destino. Esto incluye el INSERT ... ON CONFLICT de EnsureRow: si la
		// fila no existe todavía, el insert especulativo ya bloquea la llave,
		// y dos traslados opuestos con órdenes distintos se bloquearían
		// mutuamente antes de llegar al FOR UPDATE.
		ordered := orderedPair(input.SourceLocationID, input.DestLocationID)
		for _, locID := range ordered {
			if err := snapRepo.EnsureRow(ctx, input.SKUID, locID); err != nil {
				return err
			}
		}
		for _, locID := range ordered {
			if _, err := snapRepo.GetForUpdate(ctx, input.SKUID, locID); err != nil {
				return err
			}
		}

		srcBal, ok, err := snapRepo.GuardedDecrement(ctx, input.SKUID, input.SourceLocationID, input.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInsufficientStock
		}
		dstBal, err := snapRepo.Increment(ctx, input.SKUID, input.DestLocationID, input.Quantity)
		if err != nil {
			return err
		}

		current, err := skuRepo.GetByID(ctx, input.SKUID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrUnknownSKU
		}
		unitCost := current.AvgCost

		// Dos patas con la misma referencia: OUT negativo en origen, IN positivo en destino
		outMov := &entity.Movement{
			TransactionID:  txID,
			SKUID:          input.SKUID,
			LocationID:     input.SourceLocationID,
			Kind:           entity.MovementKindOUT,
			QuantityChange: -input.Quantity,
			UnitCost:       unitCost,
			TotalCost:      unitCost.Mul(decimal.NewFromInt(-input.Quantity)),
			Reference:      reference,
			Actor:          actorOrNil(input.Actor),
			CreatedAt:      now,
		}
		if err := movRepo.Create(ctx, outMov); err != nil {
			return err
		}
		inMov := &entity.Movement{
			TransactionID:  txID,
			SKUID:          input.SKUID,
			LocationID:     input.DestLocationID,
			Kind:           entity.MovementKindIN,
			QuantityChange: input.Quantity,
			UnitCost:       unitCost,
			TotalCost:      unitCost.Mul(decimal.NewFromInt(input.Quantity)),
			Reference:      reference,
			Actor:          actorOrNil(input.Actor),
			CreatedAt:      now,
		}
		if err := movRepo.Create(ctx, inMov); err != nil {
			return err
		}

		result = TransferResult{
			TransactionID: txID,
			Reference:     reference,
			SourceBalance: srcBal,
			DestBalance:   dstBal,
		}
		return nil
	})
	if err != nil {
		if err == domain.ErrInsufficientStock {
			e.metrics.IncInsufficientStock()
		}
		return TransferResult{}, err
	}
	e.metrics.IncTransfer()
	return result, nil
}

// orderedPair devuelve los dos location_id en orden ascendente fijo.
func orderedPair(a, b int64) [2]int64 {
	if a > b {
		return [2]int64{b, a}
	}
	return [2]int64{a, b}
}
