package http

import (
	"github.com/TPBCanada/InventoryApp-sub000/internal/application/dto"
	"github.com/TPBCanada/InventoryApp-sub000/internal/application/ledger"
	"github.com/gofiber/fiber/v2"
)

// InventoryHandler maneja las peticiones HTTP de movimientos de inventario.
type InventoryHandler struct {
	engine *ledger.Engine
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(engine *ledger.Engine) *InventoryHandler {
	return &InventoryHandler{engine: engine}
}

// Receive godoc
// @Summary      Registrar una entrada de inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-Actor  header  string  false  "Quién ejecuta el movimiento (vacío = sistema)"
// @Param        body  body  dto.ReceiveRequest  true  "sku_id, location_id, quantity (> 0), note, unit_cost (opcional)"
// @Success      201  {object}  dto.BalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/receive [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newBalance, err := h.engine.Receive(c.Context(), in.SKUID, in.LocationID, in.Quantity, actorFrom(c), in.Note, in.UnitCost)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BalanceResponse{
		SKUID:      in.SKUID,
		LocationID: in.LocationID,
		NewBalance: newBalance,
	})
}

// Issue godoc
// @Summary      Registrar una salida de inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-Actor  header  string  false  "Quién ejecuta el movimiento (vacío = sistema)"
// @Param        body  body  dto.IssueRequest  true  "sku_id, location_id, quantity (> 0), note"
// @Success      201  {object}  dto.BalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/issue [post]
func (h *InventoryHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newBalance, err := h.engine.Issue(c.Context(), in.SKUID, in.LocationID, in.Quantity, actorFrom(c), in.Note)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BalanceResponse{
		SKUID:      in.SKUID,
		LocationID: in.LocationID,
		NewBalance: newBalance,
	})
}

// Adjust godoc
// @Summary      Registrar un ajuste de inventario (cantidad con signo)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-Actor  header  string  false  "Quién ejecuta el movimiento (vacío = sistema)"
// @Param        body  body  dto.AdjustRequest  true  "sku_id, location_id, quantity (con signo, <> 0), note"
// @Success      201  {object}  dto.BalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newBalance, err := h.engine.Adjust(c.Context(), in.SKUID, in.LocationID, in.Quantity, actorFrom(c), in.Note)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BalanceResponse{
		SKUID:      in.SKUID,
		LocationID: in.LocationID,
		NewBalance: newBalance,
	})
}

// Transfer godoc
// @Summary      Trasladar stock entre dos ubicaciones
// @Description  Resta en el origen y suma en el destino como una sola operación
//
//	todo-o-nada; ambas patas quedan en el libro con la misma referencia.
//
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-Actor  header  string  false  "Quién ejecuta el traslado (vacío = sistema)"
// @Param        body  body  dto.TransferRequest  true  "sku_id, source_location_id, dest_location_id, quantity (> 0)"
// @Success      201  {object}  dto.TransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.engine.Transfer(c.Context(), ledger.TransferInput{
		SKUID:            in.SKUID,
		SourceLocationID: in.SourceLocationID,
		DestLocationID:   in.DestLocationID,
		Quantity:         in.Quantity,
		Actor:            actorFrom(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransferResponse{
		TransactionID: result.TransactionID,
		Reference:     result.Reference,
		SourceBalance: result.SourceBalance,
		DestBalance:   result.DestBalance,
	})
}
