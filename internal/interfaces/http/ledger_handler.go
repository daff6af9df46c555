package http

import (
	"time"

	"github.com/TPBCanada/InventoryApp-sub000/internal/application/balance"
	"github.com/TPBCanada/InventoryApp-sub000/internal/application/dto"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
)

// LedgerHandler consulta de solo lectura del libro de movimientos con saldo
// acumulado por llave.
type LedgerHandler struct {
	service *balance.Service
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(service *balance.Service) *LedgerHandler {
	return &LedgerHandler{service: service}
}

// List godoc
// @Summary      Libro de movimientos con saldo acumulado
// @Description  Devuelve movimientos recientes-primero, cada uno anotado con el
//
//	saldo de su llave (sku, ubicación) hasta esa fila. Los filtros se
//	aplican antes de calcular los saldos.
//
// @Tags         ledger
// @Produce      json
// @Param        sku_id       query  int     false  "Filtrar por SKU (id)"
// @Param        sku          query  string  false  "Filtrar por SKU (código)"
// @Param        location_id  query  int     false  "Filtrar por ubicación"
// @Param        row          query  int     false  "Fila del rack"
// @Param        bay          query  int     false  "Bahía"
// @Param        level        query  int     false  "Nivel"
// @Param        side         query  string  false  "Lado (F o B)"
// @Param        from         query  string  false  "Desde (RFC 3339)"
// @Param        to           query  string  false  "Hasta (RFC 3339)"
// @Param        limit        query  int     false  "Tamaño de página (def. 50)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.LedgerRowResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/ledger [get]
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	var q dto.LedgerQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	filter, err := toBalanceFilter(q)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}

	rows, err := h.service.RunningBalance(c.Context(), filter)
	if err != nil {
		return writeDomainError(c, err)
	}

	out := make([]dto.LedgerRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toLedgerRow(row))
	}
	return c.JSON(out)
}

// toBalanceFilter valida y convierte los query params al filtro de la capa
// de aplicación.
func toBalanceFilter(q dto.LedgerQuery) (balance.Filter, error) {
	page := dto.PageRequest{Limit: q.Limit, Offset: q.Offset}
	page.DefaultPage()

	f := balance.Filter{
		SKUID:      q.SKUID,
		SKUCode:    q.SKUCode,
		LocationID: q.LocationID,
		Row:        q.Row,
		Bay:        q.Bay,
		Level:      q.Level,
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	if q.Side != nil && *q.Side != "" {
		if *q.Side != entity.SideFront && *q.Side != entity.SideBack {
			return f, fiber.NewError(fiber.StatusBadRequest, "side debe ser F o B")
		}
		f.Side = q.Side
	}
	if q.From != nil && *q.From != "" {
		t, err := time.Parse(time.RFC3339, *q.From)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "from debe ser RFC 3339")
		}
		f.From = &t
	}
	if q.To != nil && *q.To != "" {
		t, err := time.Parse(time.RFC3339, *q.To)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "to debe ser RFC 3339")
		}
		f.To = &t
	}
	return f, nil
}

func toLedgerRow(row *entity.MovementWithBalance) dto.LedgerRowResponse {
	return dto.LedgerRowResponse{
		ID:             row.ID,
		TransactionID:  row.TransactionID,
		SKUID:          row.SKUID,
		LocationID:     row.LocationID,
		Kind:           row.Kind,
		QuantityChange: row.QuantityChange,
		UnitCost:       row.UnitCost,
		TotalCost:      row.TotalCost,
		Reference:      row.Reference,
		Actor:          row.Actor,
		CreatedAt:      row.CreatedAt,
		RunningBalance: row.RunningBalance,
	}
}
