package http

import (
	"github.com/TPBCanada/InventoryApp-sub000/internal/application/reconcile"
	"github.com/gofiber/fiber/v2"
)

// ReconcileHandler expone la detección y corrección de deriva entre los
// snapshots y el libro.
type ReconcileHandler struct {
	service *reconcile.Service
}

// NewReconcileHandler construye el handler.
func NewReconcileHandler(service *reconcile.Service) *ReconcileHandler {
	return &ReconcileHandler{service: service}
}

// Report godoc
// @Summary      Reporte de deriva snapshot vs libro
// @Description  Compara, sin escribir nada, la cantidad de cada snapshot contra
//
//	la suma del libro de su llave, y el total denormalizado de cada SKU
//	contra sus sumas.
//
// @Tags         reconciliation
// @Produce      json
// @Success      200  {object}  reconcile.DriftReport
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reconciliation/report [get]
func (h *ReconcileHandler) Report(c *fiber.Ctx) error {
	report, err := h.service.DetectDrift(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(report)
}

// Apply godoc
// @Summary      Corregir la deriva detectada
// @Description  Por cada llave con deriva inserta un ADJUSTMENT compensatorio en
//
//	el libro y reafirma snapshot == suma del libro, una transacción por
//	llave. Con dry_run=true solo reporta lo que corregiría.
//
// @Tags         reconciliation
// @Produce      json
// @Param        dry_run  query  bool  false  "Simular sin escribir (def. false)"
// @Success      200  {object}  reconcile.CorrectionReport
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reconciliation/apply [post]
func (h *ReconcileHandler) Apply(c *fiber.Ctx) error {
	dryRun := c.QueryBool("dry_run", false)
	report, err := h.service.CorrectDrift(c.Context(), dryRun)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(report)
}
