package http

import (
	"github.com/TPBCanada/InventoryApp-sub000/internal/application/dto"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
	"github.com/gofiber/fiber/v2"
)

// StockHandler lecturas del snapshot de existencias actuales. Lee la fila
// materializada, nunca recorre el libro.
type StockHandler struct {
	snapshots repository.SnapshotRepository
}

// NewStockHandler construye el handler.
func NewStockHandler(snapshots repository.SnapshotRepository) *StockHandler {
	return &StockHandler{snapshots: snapshots}
}

// Get godoc
// @Summary      Stock actual por SKU, por ubicación o por llave exacta
// @Description  Con sku_id y location_id devuelve la llave exacta (cero si no
//
//	hay movimientos todavía). Con solo uno de los dos, lista las filas de
//	ese SKU o de esa ubicación.
//
// @Tags         inventory
// @Produce      json
// @Param        sku_id       query  int  false  "SKU"
// @Param        location_id  query  int  false  "Ubicación"
// @Success      200  {array}   dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	skuID := int64(c.QueryInt("sku_id", 0))
	locationID := int64(c.QueryInt("location_id", 0))

	switch {
	case skuID > 0 && locationID > 0:
		snap, err := h.snapshots.Get(c.Context(), skuID, locationID)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON([]dto.StockResponse{toStockResponse(snap)})
	case skuID > 0:
		snaps, err := h.snapshots.ListBySKU(c.Context(), skuID)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(toStockResponses(snaps))
	case locationID > 0:
		snaps, err := h.snapshots.ListByLocation(c.Context(), locationID)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(toStockResponses(snaps))
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "indique sku_id, location_id o ambos"})
	}
}

func toStockResponse(snap *entity.Snapshot) dto.StockResponse {
	return dto.StockResponse{
		SKUID:      snap.SKUID,
		LocationID: snap.LocationID,
		Quantity:   snap.Quantity,
		UpdatedAt:  snap.UpdatedAt,
	}
}

func toStockResponses(snaps []*entity.Snapshot) []dto.StockResponse {
	out := make([]dto.StockResponse, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, toStockResponse(snap))
	}
	return out
}
