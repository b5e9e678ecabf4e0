// Package analytics agrega ventas completadas en reportes de rentabilidad.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	domaininv "github.com/jhoicas/gestion-inventario/internal/domain/inventory"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

// Límites del período cuando el filtro no trae fechas.
var (
	floorDate   = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	ceilingDate = time.Date(2100, 12, 31, 23, 59, 0, 0, time.UTC)
)

// ReportFilters filtros del reporte de balance. Las fechas se toman por día completo.
type ReportFilters struct {
	ProductID  string
	CustomerID string
	StartDate  *time.Time
	EndDate    *time.Time
}

// Window devuelve [inicio del día de StartDate, fin del día de EndDate] con los límites por defecto.
func (f ReportFilters) Window() (time.Time, time.Time) {
	from, to := floorDate, ceilingDate
	if f.StartDate != nil {
		y, m, d := f.StartDate.Date()
		from = time.Date(y, m, d, 0, 0, 0, 0, f.StartDate.Location())
	}
	if f.EndDate != nil {
		y, m, d := f.EndDate.Date()
		to = time.Date(y, m, d, 23, 59, 59, 999999999, f.EndDate.Location())
	}
	return from, to
}

// BalanceReportUseCase genera el balance de ventas por producto. Solo lee.
type BalanceReportUseCase struct {
	sales    repository.OrderRepository
	products repository.ProductRepository
	now      func() time.Time
	pdf      ReportExporter
	xlsx     ReportExporter
}

// NewBalanceReportUseCase construye el caso de uso.
func NewBalanceReportUseCase(sales repository.OrderRepository, products repository.ProductRepository) *BalanceReportUseCase {
	return &BalanceReportUseCase{sales: sales, products: products, now: time.Now}
}

type accumulator struct {
	productID string
	name      string
	quantity  int
	revenue   decimal.Decimal
}

// Generate agrega las ventas CONFIRMED y RECEIVED del período.
func (uc *BalanceReportUseCase) Generate(ctx context.Context, f ReportFilters) (*dto.BalanceReportDTO, error) {
	from, to := f.Window()
	orders, err := uc.sales.List(ctx, repository.OrderFilter{
		CounterpartyID: f.CustomerID,
		Statuses:       []string{entity.OrderStatusConfirmed, entity.OrderStatusReceived},
		From:           &from,
		To:             &to,
	})
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*accumulator)
	for _, o := range orders {
		for _, it := range o.Items {
			if f.ProductID != "" && it.ProductID != f.ProductID {
				continue
			}
			acc, ok := groups[it.ProductID]
			if !ok {
				acc = &accumulator{productID: it.ProductID, name: it.ProductName, revenue: decimal.Zero}
				groups[it.ProductID] = acc
			}
			acc.quantity += it.Quantity
			acc.revenue = acc.revenue.Add(it.Subtotal)
		}
	}

	rows := make([]dto.BalanceRowDTO, 0, len(groups))
	summary := dto.BalanceSummaryDTO{
		TotalRevenue: decimal.Zero,
		TotalCost:    decimal.Zero,
		TotalProfit:  decimal.Zero,
		OrderCount:   len(orders), // tras el filtro de cliente; el de producto no lo reduce
	}
	for _, acc := range groups {
		product, err := uc.products.GetByID(ctx, acc.productID)
		if err != nil {
			return nil, err
		}
		unitCost, name, category := decimal.Zero, acc.name, ""
		if product != nil {
			unitCost, name, category = product.PurchasePrice, product.Name, product.Category
		}
		cost := domaininv.LineSubtotal(acc.quantity, unitCost)
		profit := acc.revenue.Sub(cost)
		rows = append(rows, dto.BalanceRowDTO{
			ProductID:    acc.productID,
			ProductName:  name,
			Category:     category,
			Quantity:     acc.quantity,
			Revenue:      domaininv.RoundMoney(acc.revenue),
			Cost:         domaininv.RoundMoney(cost),
			Profit:       domaininv.RoundMoney(profit),
			MarginPct:    domaininv.MarginPercent(profit, acc.revenue),
			AveragePrice: domaininv.AveragePrice(acc.revenue, acc.quantity),
		})
		summary.TotalRevenue = summary.TotalRevenue.Add(acc.revenue)
		summary.TotalCost = summary.TotalCost.Add(cost)
		summary.ItemsSold += acc.quantity
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].Revenue.Cmp(rows[j].Revenue); c != 0 {
			return c > 0
		}
		return rows[i].ProductName < rows[j].ProductName
	})

	profit := summary.TotalRevenue.Sub(summary.TotalCost)
	summary.MarginPct = domaininv.MarginPercent(profit, summary.TotalRevenue)
	summary.TotalRevenue = domaininv.RoundMoney(summary.TotalRevenue)
	summary.TotalCost = domaininv.RoundMoney(summary.TotalCost)
	summary.TotalProfit = domaininv.RoundMoney(profit)

	return &dto.BalanceReportDTO{
		From:        from,
		To:          to,
		ProductID:   f.ProductID,
		CustomerID:  f.CustomerID,
		Rows:        rows,
		Summary:     summary,
		GeneratedAt: uc.now(),
	}, nil
}
