package repository

import "context"

// KeyDrift resultado crudo de comparar snapshot contra la suma del libro
// para una llave (sku, ubicación) con al menos un movimiento.
type KeyDrift struct {
	SKUID       int64
	LocationID  int64
	SnapshotQty int64
	LedgerSum   int64
}

// SKUDrift compara el total denormalizado del SKU contra la suma de
// snapshots y la suma del libro en todas las ubicaciones.
type SKUDrift struct {
	SKUID         int64
	SKUCode       string
	TotalQuantity int64
	SnapshotSum   int64
	LedgerSum     int64
}

// ReconciliationRepository define las lecturas agregadas que usa el motor de
// reconciliación. Solo lectura; corre sobre una vista consistente sin
// mantener bloqueos largos que maten la ruta de escritura.
type ReconciliationRepository interface {
	// KeyDrifts devuelve, por llave con movimientos, snapshot y suma del libro.
	KeyDrifts(ctx context.Context) ([]KeyDrift, error)
	// SKUDrifts devuelve, por SKU con movimientos, el total denormalizado,
	// la suma de snapshots y la suma del libro.
	SKUDrifts(ctx context.Context) ([]SKUDrift, error)
}
