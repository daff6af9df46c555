package entity

import "time"

// Snapshot representa la cantidad actual de un SKU en una ubicación
// (vista materializada derivada de los movimientos). Se crea en 0 con el
// primer movimiento que toca la llave y nunca se borra mientras exista
// historial: una fila en 0 es distinta de "nunca existió".
type Snapshot struct {
	SKUID      int64
	LocationID int64
	Quantity   int64 // invariante: >= 0 en todo estado confirmado
	UpdatedAt  time.Time
}
