package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/gestion-inventario/internal/application/analytics"
	"github.com/jhoicas/gestion-inventario/internal/application/inventory"
	"github.com/jhoicas/gestion-inventario/internal/application/purchasing"
	"github.com/jhoicas/gestion-inventario/internal/application/sales"
	"github.com/jhoicas/gestion-inventario/internal/application/usecase"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
	"github.com/jhoicas/gestion-inventario/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/gestion-inventario/internal/infrastructure/pdf"
	"github.com/jhoicas/gestion-inventario/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/gestion-inventario/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/gestion-inventario/internal/interfaces/http"
	"github.com/jhoicas/gestion-inventario/pkg/config"
	"github.com/jhoicas/gestion-inventario/pkg/logger"
	"github.com/jhoicas/gestion-inventario/pkg/phone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		repos    repository.TxRepositories
		txRunner inventory.TxRunner
	)
	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		repos = store.Repositories()
		txRunner = memory.NewTxRunner(store)
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos = postgres.NewRepositories(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	normalizer := phone.NewNormalizer(cfg.Phone.DefaultRegion)

	productUC := usecase.NewProductUseCase(repos.Products)
	customerUC := usecase.NewCustomerUseCase(repos.Customers, normalizer)
	supplierUC := usecase.NewSupplierUseCase(repos.Suppliers, normalizer)
	stockUC := inventory.NewStockLedgerUseCase(txRunner, repos.Movements, repos.Products)
	saleUC := sales.NewSaleOrderUseCase(txRunner, repos.Sales)
	purchaseUC := purchasing.NewPurchaseOrderUseCase(txRunner, repos.Purchases)

	// Exportes del balance: PDF (Maroto) y Excel (excelize)
	reportUC := analytics.NewBalanceReportUseCase(repos.Sales, repos.Products).
		WithExporters(infrapdf.NewBalanceReportPDF(cfg.App.Name), infraxlsx.NewBalanceReportXLSX())
	dashboardUC := analytics.NewDashboardUseCase(repos, stockUC, reportUC)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.DocsPath,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	} else {
		log.Debug().Str("path", cfg.App.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		CustomerUC:  customerUC,
		SupplierUC:  supplierUC,
		StockUC:     stockUC,
		SaleUC:      saleUC,
		PurchaseUC:  purchaseUC,
		ReportUC:    reportUC,
		DashboardUC: dashboardUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
