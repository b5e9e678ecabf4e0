package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-inventario/internal/application/analytics"
	"github.com/jhoicas/gestion-inventario/internal/application/inventory"
	"github.com/jhoicas/gestion-inventario/internal/application/purchasing"
	"github.com/jhoicas/gestion-inventario/internal/application/sales"
	"github.com/jhoicas/gestion-inventario/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	CustomerUC  *usecase.CustomerUseCase
	SupplierUC  *usecase.SupplierUseCase
	StockUC     *inventory.StockLedgerUseCase
	SaleUC      *sales.SaleOrderUseCase
	PurchaseUC  *purchasing.PurchaseOrderUseCase
	ReportUC    *analytics.BalanceReportUseCase
	DashboardUC *analytics.DashboardUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.StockUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/available", productHandler.Available)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Customers / Suppliers
	registerParty(api.Group("/customers"), NewPartyHandler(deps.CustomerUC))
	registerParty(api.Group("/suppliers"), NewPartyHandler(deps.SupplierUC))

	// Stock ledger
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/recent", stockHandler.Recent)
	stock.Get("/product/:productId", stockHandler.ListByProduct)
	stock.Get("/product/:productId/current", stockHandler.Current)
	stock.Post("/product/:productId/add", stockHandler.Add)
	stock.Post("/product/:productId/remove", stockHandler.Remove)
	stock.Post("/product/:productId/adjust", stockHandler.Adjust)

	// Sales
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/confirm", saleHandler.Confirm)
	salesGroup.Post("/:id/deliver", saleHandler.Deliver)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)

	// Purchases
	purchases := api.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Get("/", purchaseHandler.List)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/confirm", purchaseHandler.Confirm)
	purchases.Post("/:id/receive", purchaseHandler.Receive)
	purchases.Post("/:id/cancel", purchaseHandler.Cancel)

	// Reports
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/balance", reportHandler.Balance)
	reports.Get("/balance.pdf", reportHandler.BalancePDF)
	reports.Get("/balance.xlsx", reportHandler.BalanceXLSX)

	// Dashboard
	if deps.DashboardUC != nil {
		api.Get("/dashboard/summary", NewDashboardHandler(deps.DashboardUC).GetSummary)
	}
}

func registerParty(g fiber.Router, h *PartyHandler) {
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}
