package http

import (
	"strconv"

	"github.com/TPBCanada/InventoryApp-sub000/internal/application/dto"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/entity"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
	"github.com/gofiber/fiber/v2"
)

// LocationHandler catálogo de ubicaciones físicas del almacén.
type LocationHandler struct {
	repo repository.LocationRepository
}

// NewLocationHandler construye el handler.
func NewLocationHandler(repo repository.LocationRepository) *LocationHandler {
	return &LocationHandler{repo: repo}
}

// Create godoc
// @Summary      Crear ubicación
// @Description  El código se deriva de las coordenadas: R<fila>-<bahía>-<nivel>-<lado>.
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "row, bay, level, side (F|B)"
// @Success      201  {object}  dto.LocationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Row < 1 || in.Bay < 1 || in.Level < 1 || (in.Side != entity.SideFront && in.Side != entity.SideBack) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "row/bay/level deben ser >= 1 y side F o B"})
	}
	location := &entity.Location{
		Row:    in.Row,
		Bay:    in.Bay,
		Level:  in.Level,
		Side:   in.Side,
		Active: true,
	}
	if err := h.repo.Create(c.Context(), location); err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLocationResponse(location))
}

// List godoc
// @Summary      Listar ubicaciones
// @Tags         locations
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (def. 50)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	locations, err := h.repo.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.LocationResponse, 0, len(locations))
	for _, location := range locations {
		out = append(out, toLocationResponse(location))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ubicación por id
// @Tags         locations
// @Produce      json
// @Param        id  path  int  true  "ID de la ubicación"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [get]
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	location, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	if location == nil {
		return writeDomainError(c, domain.ErrNotFound)
	}
	return c.JSON(toLocationResponse(location))
}

func toLocationResponse(location *entity.Location) dto.LocationResponse {
	return dto.LocationResponse{
		ID:        location.ID,
		Row:       location.Row,
		Bay:       location.Bay,
		Level:     location.Level,
		Side:      location.Side,
		Code:      location.Code,
		Active:    location.Active,
		CreatedAt: location.CreatedAt,
	}
}
