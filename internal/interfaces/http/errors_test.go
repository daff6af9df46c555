package http

import (
	"net/http/httptest"
	"testing"

	"github.com/TPBCanada/InventoryApp-sub000/internal/application/dto"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWriteDomainError_Mapeo verifica el contrato de códigos HTTP: los fallos
// de negocio distinguen entrada inválida (400), referencia desconocida (404),
// conflicto de stock (409) y llave ocupada (503).
func TestWriteDomainError_Mapeo(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrInvalidTransfer, fiber.StatusBadRequest, "INVALID_TRANSFER"},
		{domain.ErrUnknownSKU, fiber.StatusNotFound, "UNKNOWN_SKU"},
		{domain.ErrUnknownLocation, fiber.StatusNotFound, "UNKNOWN_LOCATION"},
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrLockTimeout, fiber.StatusServiceUnavailable, "LOCK_TIMEOUT"},
		{assert.AnError, fiber.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.wantCode, func(t *testing.T) {
			app := fiber.New()
			app.Get("/boom", func(c *fiber.Ctx) error {
				return writeDomainError(c, tc.err)
			})
			resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestToBalanceFilter(t *testing.T) {
	side := "F"
	from := "2026-03-01T08:00:00Z"
	skuID := int64(7)
	f, err := toBalanceFilter(dto.LedgerQuery{
		SKUID: &skuID,
		Side:  &side,
		From:  &from,
		Limit: 10,
	})
	require.NoError(t, err)
	require.NotNil(t, f.SKUID)
	assert.Equal(t, int64(7), *f.SKUID)
	require.NotNil(t, f.Side)
	assert.Equal(t, "F", *f.Side)
	require.NotNil(t, f.From)
	assert.Equal(t, 10, f.Limit)
}

func TestToBalanceFilter_Invalidos(t *testing.T) {
	malo := "X"
	_, err := toBalanceFilter(dto.LedgerQuery{Side: &malo})
	assert.Error(t, err, "lado fuera de F/B")

	fecha := "ayer a las tres"
	_, err = toBalanceFilter(dto.LedgerQuery{From: &fecha})
	assert.Error(t, err, "fecha fuera de RFC 3339")
}

func TestToBalanceFilter_PaginacionPorDefecto(t *testing.T) {
	f, err := toBalanceFilter(dto.LedgerQuery{})
	require.NoError(t, err)
	assert.Equal(t, 50, f.Limit)
	assert.Equal(t, 0, f.Offset)
}
