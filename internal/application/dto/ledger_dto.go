package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerQuery filtros de la vista de libro (query params). Se aplican antes
// de particionar por llave al calcular el saldo acumulado.
type LedgerQuery struct {
	SKUID      *int64  `query:"sku_id"`
	SKUCode    *string `query:"sku"`
	LocationID *int64  `query:"location_id"`
	Row        *int    `query:"row"`
	Bay        *int    `query:"bay"`
	Level      *int    `query:"level"`
	Side       *string `query:"side"`
	From       *string `query:"from"` // RFC 3339
	To         *string `query:"to"`   // RFC 3339
	Limit      int     `query:"limit"`
	Offset     int     `query:"offset"`
}

// LedgerRowResponse un movimiento con su saldo acumulado "hasta esa fila".
type LedgerRowResponse struct {
	ID             int64           `json:"id"`
	TransactionID  string          `json:"transaction_id"`
	SKUID          int64           `json:"sku_id"`
	LocationID     int64           `json:"location_id"`
	Kind           string          `json:"kind"`
	QuantityChange int64           `json:"quantity_change"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	Reference      string          `json:"reference"`
	Actor          *string         `json:"actor,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	RunningBalance int64           `json:"running_balance"`
}
