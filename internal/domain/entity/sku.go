package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SKU representa un producto del inventario. El núcleo contable solo necesita
// su identidad y el flag activo; AvgCost y TotalQuantity son valores derivados
// que el motor mantiene (TotalQuantity se reconcilia contra libro y snapshots).
type SKU struct {
	ID            int64
	Code          string // único, ej. "A1"
	Name          string
	AvgCost       decimal.Decimal // costo promedio ponderado, inicia en 0
	TotalQuantity int64           // total denormalizado en todas las ubicaciones
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
