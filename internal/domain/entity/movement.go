package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementKindIN         = "IN"         // entrada
	MovementKindOUT        = "OUT"        // salida
	MovementKindADJUSTMENT = "ADJUSTMENT" // ajuste (signo lo decide el caller)
)

// ValidMovementKind indica si el tipo de movimiento es uno de los conocidos.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementKindIN, MovementKindOUT, MovementKindADJUSTMENT:
		return true
	}
	return false
}

// Movement representa un movimiento de inventario en el libro (append-only).
// Una vez escrito nunca se actualiza ni se borra; las correcciones se hacen
// insertando un movimiento compensatorio.
type Movement struct {
	ID             int64  // secuencial, desempate de orden cuando CreatedAt coincide
	TransactionID  string // UUID compartido por las dos patas de un traslado
	SKUID          int64
	LocationID     int64
	Kind           string // IN, OUT, ADJUSTMENT
	QuantityChange int64  // positivo entrada, negativo salida
	UnitCost       decimal.Decimal
	TotalCost      decimal.Decimal
	Reference      string
	Actor          *string // nil para movimientos originados por el sistema
	CreatedAt      time.Time
}

// MovementWithBalance es un movimiento anotado con su saldo acumulado
// (suma de quantity_change hasta e incluyendo esta fila, en orden cronológico).
type MovementWithBalance struct {
	Movement
	RunningBalance int64
}
