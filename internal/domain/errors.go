package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnknownSKU        = errors.New("sku desconocido o inactivo")
	ErrUnknownLocation   = errors.New("ubicación desconocida o inactiva")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidTransfer   = errors.New("traslado inválido")
	ErrLockTimeout       = errors.New("no se pudo obtener el bloqueo de la llave a tiempo")
)
