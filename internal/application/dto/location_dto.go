package dto

import "time"

// CreateLocationRequest alta de una ubicación física del almacén.
// El código se deriva de las coordenadas, no se acepta del cliente.
type CreateLocationRequest struct {
	Row   int    `json:"row" validate:"required,min=1"`
	Bay   int    `json:"bay" validate:"required,min=1"`
	Level int    `json:"level" validate:"required,min=1"`
	Side  string `json:"side" validate:"required,oneof=F B"`
}

type LocationResponse struct {
	ID        int64     `json:"id"`
	Row       int       `json:"row"`
	Bay       int       `json:"bay"`
	Level     int       `json:"level"`
	Side      string    `json:"side"`
	Code      string    `json:"code"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
