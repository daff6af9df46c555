package entity

import (
	"fmt"
	"time"
)

// Lados válidos de una ubicación.
const (
	SideFront = "F"
	SideBack  = "B"
)

// Location representa una ubicación física discreta de bodega
// (fila/columna/nivel/lado). El código legible tiene la forma "R1-2-3-F".
type Location struct {
	ID        int64
	Row       int
	Bay       int
	Level     int
	Side      string // F o B
	Code      string // "R<row>-<bay>-<level>-<side>", único
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BuildLocationCode arma el código legible a partir de los componentes.
func BuildLocationCode(row, bay, level int, side string) string {
	return fmt.Sprintf("R%d-%d-%d-%s", row, bay, level, side)
}
