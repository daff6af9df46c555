package http

import (
	"strconv"

	"github.com/TPBCanada/InventoryApp-sub000/internal/application/dto"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
	"github.com/gofiber/fiber/v2"
)

// SKUHandler catálogo de SKUs (datos de referencia).
type SKUHandler struct {
	repo repository.SKURepository
}

// NewSKUHandler construye el handler.
func NewSKUHandler(repo repository.SKURepository) *SKUHandler {
	return &SKUHandler{repo: repo}
}

// Create godoc
// @Summary      Crear SKU
// @Tags         skus
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSKURequest  true  "code, name"
// @Success      201  {object}  dto.SKUResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/skus [post]
func (h *SKUHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSKURequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Code == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code y name son obligatorios"})
	}
	sku := &entity.SKU{Code: in.Code, Name: in.Name, Active: true}
	if err := h.repo.Create(c.Context(), sku); err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSKUResponse(sku))
}

// List godoc
// @Summary      Listar SKUs
// @Tags         skus
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (def. 50)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.SKUResponse
// @Router       /api/skus [get]
func (h *SKUHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	skus, err := h.repo.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.SKUResponse, 0, len(skus))
	for _, sku := range skus {
		out = append(out, toSKUResponse(sku))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener SKU por id
// @Tags         skus
// @Produce      json
// @Param        id  path  int  true  "ID del SKU"
// @Success      200  {object}  dto.SKUResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/skus/{id} [get]
func (h *SKUHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	sku, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	if sku == nil {
		return writeDomainError(c, domain.ErrNotFound)
	}
	return c.JSON(toSKUResponse(sku))
}

func toSKUResponse(sku *entity.SKU) dto.SKUResponse {
	return dto.SKUResponse{
		ID:            sku.ID,
		Code:          sku.Code,
		Name:          sku.Name,
		AvgCost:       sku.AvgCost,
		TotalQuantity: sku.TotalQuantity,
		Active:        sku.Active,
		CreatedAt:     sku.CreatedAt,
		UpdatedAt:     sku.UpdatedAt,
	}
}
