package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-inventario/internal/application/analytics"
	"github.com/jhoicas/gestion-inventario/internal/application/dto"
	"github.com/jhoicas/gestion-inventario/internal/application/inventory"
	"github.com/jhoicas/gestion-inventario/internal/application/purchasing"
	"github.com/jhoicas/gestion-inventario/internal/application/sales"
	"github.com/jhoicas/gestion-inventario/internal/application/usecase"
	"github.com/jhoicas/gestion-inventario/internal/infrastructure/memory"
	"github.com/jhoicas/gestion-inventario/internal/infrastructure/pdf"
	"github.com/jhoicas/gestion-inventario/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/gestion-inventario/internal/interfaces/http"
	"github.com/jhoicas/gestion-inventario/pkg/phone"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el almacenamiento en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	txRunner := memory.NewTxRunner(store)

	ledger := inventory.NewStockLedgerUseCase(txRunner, repos.Movements, repos.Products)
	report := analytics.NewBalanceReportUseCase(repos.Sales, repos.Products).
		WithExporters(pdf.NewBalanceReportPDF("Inventario test"), xlsx.NewBalanceReportXLSX())
	normalizer := phone.NewNormalizer("CO")

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(repos.Products),
		CustomerUC:  usecase.NewCustomerUseCase(repos.Customers, normalizer),
		SupplierUC:  usecase.NewSupplierUseCase(repos.Suppliers, normalizer),
		StockUC:     ledger,
		SaleUC:      sales.NewSaleOrderUseCase(txRunner, repos.Sales),
		PurchaseUC:  purchasing.NewPurchaseOrderUseCase(txRunner, repos.Purchases),
		ReportUC:    report,
		DashboardUC: analytics.NewDashboardUseCase(repos, ledger, report),
	})
	return app
}

// do ejecuta la petición y decodifica el cuerpo JSON en out (si no es nil).
func do(t *testing.T, app *fiber.App, method, path string, body any, out any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func createProduct(t *testing.T, app *fiber.App, name, price string) dto.ProductResponse {
	t.Helper()
	var p dto.ProductResponse
	resp := do(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": name, "price": price, "purchase_price": "6.00",
	}, &p)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return p
}

func createCustomer(t *testing.T, app *fiber.App, name string) dto.PartyResponse {
	t.Helper()
	var cst dto.PartyResponse
	resp := do(t, app, http.MethodPost, "/api/customers", map[string]any{"name": name}, &cst)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return cst
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	var body map[string]string
	resp := do(t, app, http.MethodGet, "/health", nil, &body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestProducts_CRUDYErrores(t *testing.T) {
	app := buildTestApp(t)
	p := createProduct(t, app, "Cuaderno", "10.00")
	assert.Equal(t, "10", p.Price.String())

	var got dto.ProductResponse
	resp := do(t, app, http.MethodGet, "/api/products/"+p.ID, nil, &got)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Cuaderno", got.Name)

	var errBody dto.ErrorResponse
	resp = do(t, app, http.MethodGet, "/api/products/no-existe", nil, &errBody)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errBody.Code)

	resp = do(t, app, http.MethodPost, "/api/products", map[string]any{"price": "1"}, &errBody)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Contains(t, errBody.Message, "name")

	resp = do(t, app, http.MethodPost, "/api/products", map[string]any{"name": "X", "price": "-1"}, &errBody)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var list dto.ListResponse[dto.ProductResponse]
	do(t, app, http.MethodGet, "/api/products?name=cuad", nil, &list)
	assert.Equal(t, 1, list.Total)

	resp = do(t, app, http.MethodDelete, "/api/products/"+p.ID, nil, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestStock_EntradaSalidaYStockInsuficiente(t *testing.T) {
	app := buildTestApp(t)
	p := createProduct(t, app, "Lápiz", "1.00")
	base := "/api/stock/product/" + p.ID

	var m dto.MovementResponse
	resp := do(t, app, http.MethodPost, base+"/add", map[string]any{"quantity": 5, "reason": "inicial"}, &m)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, 5, m.BalanceAfter)
	assert.Equal(t, "IN", m.Type)

	var errBody dto.ErrorResponse
	resp = do(t, app, http.MethodPost, base+"/remove", map[string]any{"quantity": 7}, &errBody)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)
	assert.Contains(t, errBody.Message, "Disponible: 5")

	resp = do(t, app, http.MethodPost, base+"/add", map[string]any{"quantity": 0}, &errBody)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QUANTITY", errBody.Code)

	resp = do(t, app, http.MethodPost, base+"/adjust", map[string]any{"quantity": 2}, &m)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, 2, m.BalanceAfter)

	var cur dto.CurrentStockResponse
	do(t, app, http.MethodGet, base+"/current", nil, &cur)
	assert.Equal(t, 2, cur.Stock)

	resp = do(t, app, http.MethodGet, "/api/stock/product/no-existe/current", nil, &errBody)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errBody.Code)

	var movements dto.ListResponse[dto.MovementResponse]
	do(t, app, http.MethodGet, base, nil, &movements)
	assert.Equal(t, 2, movements.Total)

	var available dto.ListResponse[dto.AvailableProductResponse]
	do(t, app, http.MethodGet, "/api/products/available", nil, &available)
	require.Equal(t, 1, available.Total)
	assert.Equal(t, 2, available.Items[0].Stock)
}

func TestSales_CicloDeVida(t *testing.T) {
	app := buildTestApp(t)
	p := createProduct(t, app, "Cuaderno", "10.00")
	cst := createCustomer(t, app, "Ana")
	do(t, app, http.MethodPost, "/api/stock/product/"+p.ID+"/add", map[string]any{"quantity": 10}, nil)

	var sale dto.OrderResponse
	resp := do(t, app, http.MethodPost, "/api/sales", map[string]any{
		"customer_id": cst.ID,
		"items":       []map[string]any{{"product_id": p.ID, "quantity": 4}},
	}, &sale)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "PENDING", sale.Status)
	assert.Equal(t, "40", sale.TotalAmount.String())
	assert.ElementsMatch(t, []string{"confirm", "cancel"}, sale.AllowedActions)

	resp = do(t, app, http.MethodPost, "/api/sales/"+sale.ID+"/confirm", nil, &sale)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "CONFIRMED", sale.Status)

	var cur dto.CurrentStockResponse
	do(t, app, http.MethodGet, "/api/stock/product/"+p.ID+"/current", nil, &cur)
	assert.Equal(t, 6, cur.Stock)

	var errBody dto.ErrorResponse
	resp = do(t, app, http.MethodDelete, "/api/products/"+p.ID, nil, &errBody)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", errBody.Code)
	resp = do(t, app, http.MethodDelete, "/api/customers/"+cst.ID, nil, &errBody)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/sales/"+sale.ID+"/confirm", nil, &errBody)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", errBody.Code)

	resp = do(t, app, http.MethodPost, "/api/sales/"+sale.ID+"/cancel", nil, &sale)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	do(t, app, http.MethodGet, "/api/stock/product/"+p.ID+"/current", nil, &cur)
	assert.Equal(t, 10, cur.Stock)

	var list dto.ListResponse[dto.OrderResponse]
	do(t, app, http.MethodGet, "/api/sales?status=CANCELLED", nil, &list)
	assert.Equal(t, 1, list.Total)

	resp = do(t, app, http.MethodGet, "/api/sales?status=PERDIDA", nil, &errBody)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/sales", map[string]any{
		"customer_id": cst.ID,
		"items":       []map[string]any{{"product_id": p.ID, "quantity": 11}},
	}, &errBody)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)

	resp = do(t, app, http.MethodPost, "/api/sales", map[string]any{"customer_id": cst.ID, "items": []any{}}, &errBody)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errBody.Code)
}

func TestPurchases_RecibirIngresaStock(t *testing.T) {
	app := buildTestApp(t)
	p := createProduct(t, app, "Resma", "20.00")
	var sup dto.PartyResponse
	resp := do(t, app, http.MethodPost, "/api/suppliers", map[string]any{"name": "Papelera SA"}, &sup)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var po dto.OrderResponse
	resp = do(t, app, http.MethodPost, "/api/purchases", map[string]any{
		"supplier_id": sup.ID,
		"items":       []map[string]any{{"product_id": p.ID, "quantity": 3, "unit_price": "12.50"}},
	}, &po)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var errBody dto.ErrorResponse
	resp = do(t, app, http.MethodPost, "/api/purchases/"+po.ID+"/receive", nil, &errBody)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, "solo se recibe una compra confirmada")

	do(t, app, http.MethodPost, "/api/purchases/"+po.ID+"/confirm", nil, &po)
	resp = do(t, app, http.MethodPost, "/api/purchases/"+po.ID+"/receive", nil, &po)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "RECEIVED", po.Status)
	assert.Empty(t, po.AllowedActions)

	var cur dto.CurrentStockResponse
	do(t, app, http.MethodGet, "/api/stock/product/"+p.ID+"/current", nil, &cur)
	assert.Equal(t, 3, cur.Stock)

	var prod dto.ProductResponse
	do(t, app, http.MethodGet, "/api/products/"+p.ID, nil, &prod)
	assert.Equal(t, "12.5", prod.PurchasePrice.String())
}

func TestReports_JSONYDescargas(t *testing.T) {
	app := buildTestApp(t)

	var rep dto.BalanceReportDTO
	resp := do(t, app, http.MethodGet, "/api/reports/balance?start_date=2024-01-01&end_date=2024-01-31", nil, &rep)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, rep.Rows)
	assert.Equal(t, 2024, rep.From.Year())

	var errBody dto.ErrorResponse
	resp = do(t, app, http.MethodGet, "/api/reports/balance?start_date=01/02/2024", nil, &errBody)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_PARAMS", errBody.Code)

	resp = do(t, app, http.MethodGet, "/api/reports/balance.pdf", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".pdf")

	resp = do(t, app, http.MethodGet, "/api/reports/balance.xlsx", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "spreadsheetml")
}

func TestDashboardYRutaInexistente(t *testing.T) {
	app := buildTestApp(t)
	createProduct(t, app, "Cuaderno", "10.00")

	var summary dto.DashboardSummaryDTO
	resp := do(t, app, http.MethodGet, "/api/dashboard/summary", nil, &summary)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, summary.Products)

	var errBody dto.ErrorResponse
	resp = do(t, app, http.MethodGet, "/api/no-existe", nil, &errBody)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errBody.Code)
}
