package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/TPBCanada/InventoryApp-sub000/internal/application/ledger"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
	"github.com/TPBCanada/InventoryApp-sub000/pkg/metrics"
	"github.com/google/uuid"
)

// DriftRecord discrepancia entre el snapshot y la suma del libro para una
// llave. Diff = SnapshotQty - LedgerSum.
type DriftRecord struct {
	SKUID       int64 `json:"sku_id"`
	LocationID  int64 `json:"location_id"`
	SnapshotQty int64 `json:"snapshot_qty"`
	LedgerSum   int64 `json:"ledger_sum"`
	Diff        int64 `json:"diff"`
}

// SKUDriftRecord discrepancia del total denormalizado de un SKU contra la
// suma de snapshots y la suma del libro en todas las ubicaciones.
type SKUDriftRecord struct {
	SKUID         int64  `json:"sku_id"`
	SKUCode       string `json:"sku_code"`
	TotalQuantity int64  `json:"total_quantity"`
	SnapshotSum   int64  `json:"snapshot_sum"`
	LedgerSum     int64  `json:"ledger_sum"`
}

// DriftReport resultado de una detección de deriva.
type DriftReport struct {
	Keys      []DriftRecord    `json:"keys"`
	SKUs      []SKUDriftRecord `json:"skus"`
	CheckedAt time.Time        `json:"checked_at"`
}

// CorrectionFailure llave cuya corrección falló; las demás llaves del lote
// no se ven afectadas (una transacción por llave).
type CorrectionFailure struct {
	Key   DriftRecord `json:"key"`
	Error string      `json:"error"`
}

// CorrectionReport resultado de una corrección (o de su simulación).
type CorrectionReport struct {
	DryRun      bool                `json:"dry_run"`
	Corrected   []DriftRecord       `json:"corrected"`
	Failed      []CorrectionFailure `json:"failed"`
	TotalsFixed []SKUDriftRecord    `json:"totals_fixed"`
	CheckedAt   time.Time           `json:"checked_at"`
}

// Service detecta y corrige deriva entre el snapshot y la verdad derivada
// del libro. La corrección es la única ruta que puede fijar la cantidad del
// snapshot sin pasar por el motor de movimientos.
type Service struct {
	reconRepo repository.ReconciliationRepository
	txRunner  ledger.TxRunner
	metrics   *metrics.InventoryMetrics
}

// NewService construye el motor de reconciliación.
func NewService(reconRepo repository.ReconciliationRepository, txRunner ledger.TxRunner, m *metrics.InventoryMetrics) *Service {
	return &Service{reconRepo: reconRepo, txRunner: txRunner, metrics: m}
}

// DetectDrift compara, por llave con movimientos, la cantidad del snapshot
// contra SUM(quantity_change), y por SKU el total denormalizado contra las
// sumas de snapshots y del libro. Solo lectura.
func (s *Service) DetectDrift(ctx context.Context) (DriftReport, error) {
	report := DriftReport{CheckedAt: time.Now()}

	keyRows, err := s.reconRepo.KeyDrifts(ctx)
	if err != nil {
		return report, err
	}
	for _, row := range keyRows {
		if row.SnapshotQty == row.LedgerSum {
			continue
		}
		report.Keys = append(report.Keys, DriftRecord{
			SKUID:       row.SKUID,
			LocationID:  row.LocationID,
			SnapshotQty: row.SnapshotQty,
			LedgerSum:   row.LedgerSum,
			Diff:        row.SnapshotQty - row.LedgerSum,
		})
	}

	skuRows, err := s.reconRepo.SKUDrifts(ctx)
	if err != nil {
		return report, err
	}
	for _, row := range skuRows {
		if row.TotalQuantity == row.SnapshotSum && row.SnapshotSum == row.LedgerSum {
			continue
		}
		report.SKUs = append(report.SKUs, SKUDriftRecord{
			SKUID:         row.SKUID,
			SKUCode:       row.SKUCode,
			TotalQuantity: row.TotalQuantity,
			SnapshotSum:   row.SnapshotSum,
			LedgerSum:     row.LedgerSum,
		})
	}

	s.metrics.SetDriftKeys(len(report.Keys))
	return report, nil
}

// CorrectDrift corrige cada llave con deriva en su propia transacción: con
// la fila bloqueada recalcula la suma del libro, inserta un ADJUSTMENT
// sintético igual al diff (el libro nunca se edita, se compensa) y reafirma
// snapshot == suma del libro incluyendo el movimiento correctivo. Un fallo a
// mitad de lote solo omite las llaves restantes; ninguna queda a medias.
// Con dryRun=true devuelve el mismo reporte sin escribir nada.
func (s *Service) CorrectDrift(ctx context.Context, dryRun bool) (CorrectionReport, error) {
	detected, err := s.DetectDrift(ctx)
	if err != nil {
		return CorrectionReport{}, err
	}
	report := CorrectionReport{DryRun: dryRun, CheckedAt: detected.CheckedAt}
	if dryRun {
		report.Corrected = detected.Keys
		report.TotalsFixed = detected.SKUs
		return report, nil
	}

	for _, drift := range detected.Keys {
		corrected, err := s.correctKey(ctx, drift)
		if err != nil {
			report.Failed = append(report.Failed, CorrectionFailure{Key: drift, Error: err.Error()})
			continue
		}
		if corrected != nil {
			report.Corrected = append(report.Corrected, *corrected)
			s.metrics.IncCorrection()
		}
	}

	// Totales por SKU: reescribir el denormalizado desde la suma de snapshots
	// (ya reafirmada contra el libro llave por llave).
	fixed, err := s.correctTotals(ctx)
	if err != nil {
		return report, err
	}
	report.TotalsFixed = fixed
	return report, nil
}

// correctKey corrige una sola llave dentro de una transacción. Devuelve nil
// si la deriva desapareció entre la detección y el bloqueo.
func (s *Service) correctKey(ctx context.Context, drift DriftRecord) (*DriftRecord, error) {
	var out *DriftRecord
	err := s.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		snapRepo repository.SnapshotRepository,
		_ repository.SKURepository,
	) error {
		if err := snapRepo.EnsureRow(ctx, drift.SKUID, drift.LocationID); err != nil {
			return err
		}
		snap, err := snapRepo.GetForUpdate(ctx, drift.SKUID, drift.LocationID)
		if err != nil {
			return err
		}
		// Recalcular bajo el bloqueo: la deriva pudo cambiar desde la detección
		ledgerSum, err := movRepo.SumByKey(ctx, drift.SKUID, drift.LocationID)
		if err != nil {
			return err
		}
		diff := snap.Quantity - ledgerSum
		if diff == 0 {
			return nil
		}

		mov := &entity.Movement{
			TransactionID:  uuid.New().String(),
			SKUID:          drift.SKUID,
			LocationID:     drift.LocationID,
			Kind:           entity.MovementKindADJUSTMENT,
			QuantityChange: diff,
			Reference:      fmt.Sprintf("reconciliación: snapshot %d vs libro %d", snap.Quantity, ledgerSum),
			Actor:          nil, // originado por el sistema
			CreatedAt:      time.Now(),
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		// Reafirmar la igualdad incluyendo el movimiento correctivo
		if err := snapRepo.ForceQuantity(ctx, drift.SKUID, drift.LocationID, ledgerSum+diff); err != nil {
			return err
		}
		out = &DriftRecord{
			SKUID:       drift.SKUID,
			LocationID:  drift.LocationID,
			SnapshotQty: snap.Quantity,
			LedgerSum:   ledgerSum,
			Diff:        diff,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// correctTotals reescribe skus.total_quantity desde la suma de snapshots
// para cada SKU con deriva, una transacción por SKU.
func (s *Service) correctTotals(ctx context.Context) ([]SKUDriftRecord, error) {
	drifts, err := s.reconRepo.SKUDrifts(ctx)
	if err != nil {
		return nil, err
	}
	var fixed []SKUDriftRecord
	for _, d := range drifts {
		if d.TotalQuantity == d.SnapshotSum {
			continue
		}
		d := d
		err := s.txRunner.Run(ctx, func(
			_ repository.MovementRepository,
			snapRepo repository.SnapshotRepository,
			skuRepo repository.SKURepository,
		) error {
			sum, err := snapRepo.SumBySKU(ctx, d.SKUID)
			if err != nil {
				return err
			}
			d.SnapshotSum = sum
			return skuRepo.SetTotal(ctx, d.SKUID, sum)
		})
		if err != nil {
			return fixed, err
		}
		fixed = append(fixed, SKUDriftRecord(d))
	}
	return fixed, nil
}
