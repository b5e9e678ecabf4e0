package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-inventario/internal/application/analytics"
	"github.com/jhoicas/gestion-inventario/internal/application/inventory"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
	"github.com/jhoicas/gestion-inventario/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// seed carga dos productos y órdenes con fechas y estados controlados.
func seed(t *testing.T) repository.TxRepositories {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewStore().Repositories()
	now := time.Now()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Cuaderno", PurchasePrice: dec("6.00"), Category: "papelería", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p2", Name: "Lápiz", PurchasePrice: dec("0.40"), CreatedAt: now, UpdatedAt: now}))

	orders := []*entity.Order{
		{ID: "o1", CounterpartyID: "c1", Status: entity.OrderStatusConfirmed, OrderDate: day(2024, 3, 1), Items: []entity.OrderItem{
			{ProductID: "p1", ProductName: "Cuaderno", Quantity: 2, UnitPrice: dec("10.00"), Subtotal: dec("20.00")},
			{ProductID: "p2", ProductName: "Lápiz", Quantity: 3, UnitPrice: dec("1.00"), Subtotal: dec("3.00")},
		}},
		{ID: "o2", CounterpartyID: "c2", Status: entity.OrderStatusReceived, OrderDate: day(2024, 3, 15), Items: []entity.OrderItem{
			{ProductID: "p1", ProductName: "Cuaderno", Quantity: 1, UnitPrice: dec("9.00"), Subtotal: dec("9.00")},
		}},
		{ID: "o3", CounterpartyID: "c1", Status: entity.OrderStatusPending, OrderDate: day(2024, 3, 10), Items: []entity.OrderItem{
			{ProductID: "p1", ProductName: "Cuaderno", Quantity: 50, UnitPrice: dec("10.00"), Subtotal: dec("500.00")},
		}},
		{ID: "o4", CounterpartyID: "c1", Status: entity.OrderStatusCancelled, OrderDate: day(2024, 3, 10), Items: []entity.OrderItem{
			{ProductID: "p2", ProductName: "Lápiz", Quantity: 50, UnitPrice: dec("1.00"), Subtotal: dec("50.00")},
		}},
		{ID: "o5", CounterpartyID: "c1", Status: entity.OrderStatusConfirmed, OrderDate: day(2024, 4, 2), Items: []entity.OrderItem{
			{ProductID: "p2", ProductName: "Lápiz", Quantity: 10, UnitPrice: dec("1.00"), Subtotal: dec("10.00")},
		}},
	}
	for _, o := range orders {
		o.Kind = entity.OrderKindSale
		require.NoError(t, repos.Sales.Create(ctx, o))
	}
	return repos
}

func TestGenerate_SoloVentasCompletadas(t *testing.T) {
	repos := seed(t)
	uc := analytics.NewBalanceReportUseCase(repos.Sales, repos.Products)

	rep, err := uc.Generate(context.Background(), analytics.ReportFilters{})
	require.NoError(t, err)

	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "p1", rep.Rows[0].ProductID, "ordenado por ingreso descendente")
	assert.Equal(t, 3, rep.Rows[0].Quantity)
	assert.Equal(t, "29.00", rep.Rows[0].Revenue.StringFixed(2))
	assert.Equal(t, "18.00", rep.Rows[0].Cost.StringFixed(2), "costo actual × cantidad")
	assert.Equal(t, "11.00", rep.Rows[0].Profit.StringFixed(2))
	assert.Equal(t, "37.93", rep.Rows[0].MarginPct.StringFixed(2))
	assert.Equal(t, "9.67", rep.Rows[0].AveragePrice.StringFixed(2))
	assert.Equal(t, "papelería", rep.Rows[0].Category)

	assert.Equal(t, 13, rep.Rows[1].Quantity)
	assert.Equal(t, "5.20", rep.Rows[1].Cost.StringFixed(2))

	s := rep.Summary
	assert.Equal(t, "42.00", s.TotalRevenue.StringFixed(2))
	assert.Equal(t, "23.20", s.TotalCost.StringFixed(2))
	assert.Equal(t, "18.80", s.TotalProfit.StringFixed(2))
	assert.Equal(t, "44.76", s.MarginPct.StringFixed(2))
	assert.Equal(t, 16, s.ItemsSold)
	assert.Equal(t, 3, s.OrderCount)
}

func TestGenerate_FiltroDeFechasInclusivo(t *testing.T) {
	repos := seed(t)
	uc := analytics.NewBalanceReportUseCase(repos.Sales, repos.Products)
	start := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	rep, err := uc.Generate(context.Background(), analytics.ReportFilters{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "9.00", rep.Rows[0].Revenue.StringFixed(2))
	assert.Equal(t, 1, rep.Summary.OrderCount)
	assert.Equal(t, 23, rep.To.Hour())
}

func TestGenerate_FiltrosClienteYProducto(t *testing.T) {
	repos := seed(t)
	uc := analytics.NewBalanceReportUseCase(repos.Sales, repos.Products)

	rep, err := uc.Generate(context.Background(), analytics.ReportFilters{CustomerID: "c1", ProductID: "p2"})
	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, 13, rep.Rows[0].Quantity)
	assert.Equal(t, 2, rep.Summary.OrderCount, "o1 y o5 califican para el cliente")
}

func TestGenerate_SinVentas(t *testing.T) {
	repos := memory.NewStore().Repositories()
	uc := analytics.NewBalanceReportUseCase(repos.Sales, repos.Products)

	rep, err := uc.Generate(context.Background(), analytics.ReportFilters{})
	require.NoError(t, err)
	assert.Empty(t, rep.Rows)
	assert.True(t, rep.Summary.MarginPct.IsZero())
	assert.Equal(t, 0, rep.Summary.OrderCount)
	assert.Equal(t, 2000, rep.From.Year())
	assert.Equal(t, 2100, rep.To.Year())
}

func TestDashboardSummary(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()
	ledger := inventory.NewStockLedgerUseCase(memory.NewTxRunner(store), repos.Movements, repos.Products)
	now := time.Now()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Cuaderno", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "c1", Name: "Maria", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Sales.Create(ctx, &entity.Order{
		ID: "o1", Kind: entity.OrderKindSale, CounterpartyID: "c1", Status: entity.OrderStatusConfirmed, OrderDate: now,
		Items: []entity.OrderItem{{ProductID: "p1", Quantity: 1, UnitPrice: dec("4.00"), Subtotal: dec("4.00")}},
	}))
	_, err := ledger.RecordIn(ctx, "p1", 3, "", "")
	require.NoError(t, err)

	uc := analytics.NewDashboardUseCase(repos, ledger, analytics.NewBalanceReportUseCase(repos.Sales, repos.Products))
	sum, err := uc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Products)
	assert.Equal(t, 1, sum.Customers)
	assert.Equal(t, 1, sum.AvailableProducts)
	assert.Equal(t, 0, sum.PendingSales)
	assert.Equal(t, "4.00", sum.MonthlyRevenue.StringFixed(2))
	assert.Len(t, sum.RecentMovements, 1)
	assert.NotEmpty(t, sum.DateLabel)
}
