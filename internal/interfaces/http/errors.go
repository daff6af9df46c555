package http

import (
	"errors"

	"github.com/TPBCanada/InventoryApp-sub000/internal/application/dto"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain"
	"github.com/gofiber/fiber/v2"
)

// writeDomainError mapea errores de dominio a códigos HTTP. Todo lo no
// reconocido cae en 500.
func writeDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrInvalidTransfer):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TRANSFER", Message: "traslado inválido: cantidad <= 0 u origen igual a destino"})
	case errors.Is(err, domain.ErrUnknownSKU):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_SKU", Message: "SKU no encontrado o inactivo"})
	case errors.Is(err, domain.ErrUnknownLocation):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_LOCATION", Message: "ubicación no encontrada o inactiva"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrLockTimeout):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "LOCK_TIMEOUT", Message: "llave ocupada, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// actorFrom lee el actor de la cabecera X-Actor; vacío = sistema.
func actorFrom(c *fiber.Ctx) string {
	return c.Get("X-Actor")
}
