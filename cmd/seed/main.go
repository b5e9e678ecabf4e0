// seed carga un catálogo de productos desde un libro Excel y registra el stock inicial
// de cada uno como entrada en el libro de movimientos.
//
// Uso: go run ./cmd/seed [ruta/catalogo.xlsx]
// Por defecto busca catalogo.xlsx en el directorio actual. Usa la misma configuración
// que la API (STORAGE, DB_*, DATABASE_URL).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
	"github.com/jhoicas/gestion-inventario/internal/application/inventory"
	"github.com/jhoicas/gestion-inventario/internal/application/usecase"
	domaininv "github.com/jhoicas/gestion-inventario/internal/domain/inventory"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
	"github.com/jhoicas/gestion-inventario/internal/infrastructure/memory"
	"github.com/jhoicas/gestion-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/gestion-inventario/internal/infrastructure/xlsx"
	"github.com/jhoicas/gestion-inventario/pkg/config"
	"github.com/jhoicas/gestion-inventario/pkg/logger"
)

const seedActor = "seed"

func main() {
	path := "catalogo.xlsx"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("abrir catálogo")
	}
	defer f.Close()

	rows, err := xlsx.ReadCatalog(f)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}

	ctx := context.Background()
	var (
		repos    repository.TxRepositories
		txRunner inventory.TxRunner
	)
	if cfg.Storage == config.StorageMemory {
		log.Warn().Msg("STORAGE=memory: la carga solo valida el archivo, nada se persiste")
		store := memory.NewStore()
		repos, txRunner = store.Repositories(), memory.NewTxRunner(store)
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos, txRunner = postgres.NewRepositories(pool), postgres.NewTxRunner(pool)
	}

	productUC := usecase.NewProductUseCase(repos.Products)
	stockUC := inventory.NewStockLedgerUseCase(txRunner, repos.Movements, repos.Products)

	var created, units int
	for _, r := range rows {
		price := r.Price
		if price.IsZero() && r.ProfitMargin.IsPositive() {
			price = domaininv.SalePriceFromMargin(r.PurchasePrice, r.ProfitMargin)
		}
		p, err := productUC.Create(ctx, dto.CreateProductRequest{
			Name:          r.Name,
			Description:   r.Description,
			Price:         price,
			PurchasePrice: r.PurchasePrice,
			ProfitMargin:  r.ProfitMargin,
			Category:      r.Category,
		})
		if err != nil {
			log.Error().Err(err).Int("fila", r.Line).Str("producto", r.Name).Msg("crear producto")
			continue
		}
		created++
		if r.InitialStock > 0 {
			if _, err := stockUC.RecordIn(ctx, p.ID, r.InitialStock, "Inventario inicial", seedActor); err != nil {
				log.Error().Err(err).Int("fila", r.Line).Msg("registrar stock inicial")
				continue
			}
			units += r.InitialStock
		}
	}

	fmt.Printf("Cargados %d de %d productos, %d unidades de stock inicial\n", created, len(rows), units)
}
