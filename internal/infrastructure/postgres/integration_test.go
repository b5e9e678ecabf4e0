package postgres_test

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
	"github.com/jhoicas/gestion-inventario/internal/application/inventory"
	"github.com/jhoicas/gestion-inventario/internal/application/sales"
	"github.com/jhoicas/gestion-inventario/internal/application/usecase"
	"github.com/jhoicas/gestion-inventario/internal/domain"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
	"github.com/jhoicas/gestion-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/gestion-inventario/pkg/config"
)

// setupDB crea un esquema aislado, aplica la migración y devuelve repos + runner.
// Requiere TEST_DATABASE_URL; sin ella el test se omite.
func setupDB(t *testing.T) (repository.TxRepositories, *postgres.TxRunner) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	schema := fmt.Sprintf("test_%d", time.Now().UnixNano())

	admin, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 2})
	require.NoError(t, err)
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		admin.Close()
	})

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: u.String(), MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	ddl, err := os.ReadFile("migrations/001_init.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(ddl))
	require.NoError(t, err)

	return postgres.NewRepositories(pool), postgres.NewTxRunner(pool)
}

func TestPostgres_VentaConfirmadaYCancelada(t *testing.T) {
	repos, runner := setupDB(t)
	ctx := context.Background()

	productUC := usecase.NewProductUseCase(repos.Products)
	customerUC := usecase.NewCustomerUseCase(repos.Customers, nil)
	ledger := inventory.NewStockLedgerUseCase(runner, repos.Movements, repos.Products)
	saleUC := sales.NewSaleOrderUseCase(runner, repos.Sales)

	p, err := productUC.Create(ctx, dto.CreateProductRequest{Name: "Cuaderno", Price: decimal.RequireFromString("10.00")})
	require.NoError(t, err)
	c, err := customerUC.Create(ctx, dto.PartyRequest{Name: "Ana", Document: "123"})
	require.NoError(t, err)
	_, err = customerUC.Create(ctx, dto.PartyRequest{Name: "Otra", Document: "123"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = ledger.RecordIn(ctx, p.ID, 10, "inicial", "test")
	require.NoError(t, err)

	o, err := saleUC.Create(ctx, c.ID, []dto.OrderItemRequest{{ProductID: p.ID, Quantity: 4}}, "", "test")
	require.NoError(t, err)
	_, err = saleUC.Confirm(ctx, o.ID)
	require.NoError(t, err)

	stock, err := ledger.CurrentStock(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, stock)

	got, err := saleUC.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.CounterpartyName)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "40.00", got.TotalAmount.StringFixed(2))

	_, err = saleUC.Cancel(ctx, o.ID)
	require.NoError(t, err)
	stock, err = ledger.CurrentStock(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stock)

	movements, err := ledger.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, movements, 3)
	assert.Equal(t, "Cancelación de la venta #"+o.ID, movements[0].Reason)
}

func TestPostgres_SalidasConcurrentesNoDejanStockNegativo(t *testing.T) {
	repos, runner := setupDB(t)
	ctx := context.Background()
	productUC := usecase.NewProductUseCase(repos.Products)
	ledger := inventory.NewStockLedgerUseCase(runner, repos.Movements, repos.Products)

	p, err := productUC.Create(ctx, dto.CreateProductRequest{Name: "Lápiz"})
	require.NoError(t, err)
	_, err = ledger.RecordIn(ctx, p.ID, 5, "", "test")
	require.NoError(t, err)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.RecordOut(ctx, p.ID, 1, "", "test"); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	stock, err := ledger.CurrentStock(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)
}

func TestPostgres_IDMalFormadoEsNoEncontrado(t *testing.T) {
	repos, runner := setupDB(t)
	ctx := context.Background()
	productUC := usecase.NewProductUseCase(repos.Products)
	customerUC := usecase.NewCustomerUseCase(repos.Customers, nil)
	ledger := inventory.NewStockLedgerUseCase(runner, repos.Movements, repos.Products)
	saleUC := sales.NewSaleOrderUseCase(runner, repos.Sales)

	p, err := repos.Products.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, p)
	c, err := repos.Customers.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, c)
	o, err := repos.Sales.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, o)
	m, err := repos.Movements.Latest(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, m)

	_, err = productUC.GetByID(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, productUC.Delete(ctx, "abc"), domain.ErrNotFound)
	assert.ErrorIs(t, customerUC.Delete(ctx, "abc"), domain.ErrNotFound)
	_, err = ledger.RecordIn(ctx, "abc", 1, "", "test")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = ledger.CurrentStock(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = saleUC.Confirm(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := saleUC.ListByCustomer(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPostgres_EliminarConReferenciasEsEstadoInvalido(t *testing.T) {
	repos, runner := setupDB(t)
	ctx := context.Background()
	productUC := usecase.NewProductUseCase(repos.Products)
	customerUC := usecase.NewCustomerUseCase(repos.Customers, nil)
	ledger := inventory.NewStockLedgerUseCase(runner, repos.Movements, repos.Products)
	saleUC := sales.NewSaleOrderUseCase(runner, repos.Sales)

	p, err := productUC.Create(ctx, dto.CreateProductRequest{Name: "Regla", Price: decimal.RequireFromString("2.00")})
	require.NoError(t, err)
	c, err := customerUC.Create(ctx, dto.PartyRequest{Name: "Luis"})
	require.NoError(t, err)
	_, err = ledger.RecordIn(ctx, p.ID, 10, "", "test")
	require.NoError(t, err)
	o, err := saleUC.Create(ctx, c.ID, []dto.OrderItemRequest{{ProductID: p.ID, Quantity: 4}}, "", "test")
	require.NoError(t, err)
	_, err = saleUC.Confirm(ctx, o.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, productUC.Delete(ctx, p.ID), domain.ErrInvalidState)
	assert.ErrorIs(t, customerUC.Delete(ctx, c.ID), domain.ErrInvalidState)

	_, err = saleUC.Cancel(ctx, o.ID)
	require.NoError(t, err)
	stock, err := ledger.CurrentStock(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stock)
}
