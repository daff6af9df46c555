package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSKURequest alta de un SKU en el catálogo.
type CreateSKURequest struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type SKUResponse struct {
	ID            int64           `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	AvgCost       decimal.Decimal `json:"avg_cost"`
	TotalQuantity int64           `json:"total_quantity"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
