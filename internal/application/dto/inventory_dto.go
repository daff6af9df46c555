package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveRequest body para POST /api/inventory/receive.
type ReceiveRequest struct {
	SKUID      int64            `json:"sku_id"`
	LocationID int64            `json:"location_id"`
	Quantity   int64            `json:"quantity"`
	Note       string           `json:"note,omitempty"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
}

// IssueRequest body para POST /api/inventory/issue.
type IssueRequest struct {
	SKUID      int64  `json:"sku_id"`
	LocationID int64  `json:"location_id"`
	Quantity   int64  `json:"quantity"`
	Note       string `json:"note,omitempty"`
}

// AdjustRequest body para POST /api/inventory/adjust. Quantity lleva signo
// decidido por el caller.
type AdjustRequest struct {
	SKUID      int64  `json:"sku_id"`
	LocationID int64  `json:"location_id"`
	Quantity   int64  `json:"quantity"`
	Note       string `json:"note,omitempty"`
}

// TransferRequest body para POST /api/inventory/transfer.
type TransferRequest struct {
	SKUID            int64 `json:"sku_id"`
	SourceLocationID int64 `json:"source_location_id"`
	DestLocationID   int64 `json:"dest_location_id"`
	Quantity         int64 `json:"quantity"`
}

// BalanceResponse respuesta de una operación de movimiento simple.
type BalanceResponse struct {
	SKUID      int64 `json:"sku_id"`
	LocationID int64 `json:"location_id"`
	NewBalance int64 `json:"new_balance"`
}

// TransferResponse respuesta de un traslado confirmado.
type TransferResponse struct {
	TransactionID string `json:"transaction_id"`
	Reference     string `json:"reference"`
	SourceBalance int64  `json:"source_balance"`
	DestBalance   int64  `json:"dest_balance"`
}

// StockResponse una fila de stock actual (snapshot).
type StockResponse struct {
	SKUID      int64     `json:"sku_id"`
	LocationID int64     `json:"location_id"`
	Quantity   int64     `json:"quantity"`
	UpdatedAt  time.Time `json:"updated_at"`
}
