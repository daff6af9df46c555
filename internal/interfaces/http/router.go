package http

import (
	"github.com/TPBCanada/InventoryApp-sub000/internal/application/balance"
	"github.com/TPBCanada/InventoryApp-sub000/internal/application/ledger"
	"github.com/TPBCanada/InventoryApp-sub000/internal/application/reconcile"
	"github.com/TPBCanada/InventoryApp-sub000/internal/domain/repository"
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine       *ledger.Engine
	Balance      *balance.Service
	Reconcile    *reconcile.Service
	Snapshots    repository.SnapshotRepository
	SKURepo      repository.SKURepository
	LocationRepo repository.LocationRepository
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Movimientos (motor transaccional)
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Engine)
	inv.Post("/receive", inventoryHandler.Receive)
	inv.Post("/issue", inventoryHandler.Issue)
	inv.Post("/adjust", inventoryHandler.Adjust)
	inv.Post("/transfer", inventoryHandler.Transfer)

	// Consultas de solo lectura
	ledgerHandler := NewLedgerHandler(deps.Balance)
	inv.Get("/ledger", ledgerHandler.List)
	stockHandler := NewStockHandler(deps.Snapshots)
	inv.Get("/stock", stockHandler.Get)

	// Reconciliación
	recon := api.Group("/reconciliation")
	reconcileHandler := NewReconcileHandler(deps.Reconcile)
	recon.Get("/report", reconcileHandler.Report)
	recon.Post("/apply", reconcileHandler.Apply)

	// Datos de referencia
	skus := api.Group("/skus")
	skuHandler := NewSKUHandler(deps.SKURepo)
	skus.Post("/", skuHandler.Create)
	skus.Get("/", skuHandler.List)
	skus.Get("/:id", skuHandler.GetByID)

	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationRepo)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
}
