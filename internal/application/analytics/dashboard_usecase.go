package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
	"github.com/jhoicas/gestion-inventario/internal/application/inventory"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// DashboardUseCase arma los contadores de la pantalla de inicio.
type DashboardUseCase struct {
	repos  repository.TxRepositories
	ledger *inventory.StockLedgerUseCase
	report *BalanceReportUseCase
	now    func() time.Time
}

// NewDashboardUseCase construye el caso de uso sobre los repositorios de lectura.
func NewDashboardUseCase(repos repository.TxRepositories, ledger *inventory.StockLedgerUseCase, report *BalanceReportUseCase) *DashboardUseCase {
	return &DashboardUseCase{repos: repos, ledger: ledger, report: report, now: time.Now}
}

// Summary devuelve conteos, órdenes pendientes, ventas del mes y últimos movimientos.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	var (
		out dto.DashboardSummaryDTO
		err error
	)
	if out.Products, err = uc.repos.Products.Count(ctx); err != nil {
		return nil, fmt.Errorf("dashboard productos: %w", err)
	}
	if out.Customers, err = uc.repos.Customers.Count(ctx); err != nil {
		return nil, fmt.Errorf("dashboard clientes: %w", err)
	}
	if out.Suppliers, err = uc.repos.Suppliers.Count(ctx); err != nil {
		return nil, fmt.Errorf("dashboard proveedores: %w", err)
	}
	available, err := uc.ledger.AvailableProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard disponibles: %w", err)
	}
	out.AvailableProducts = len(available)

	pending := repository.OrderFilter{Statuses: []string{entity.OrderStatusPending}}
	sales, err := uc.repos.Sales.List(ctx, pending)
	if err != nil {
		return nil, fmt.Errorf("dashboard ventas: %w", err)
	}
	purchases, err := uc.repos.Purchases.List(ctx, pending)
	if err != nil {
		return nil, fmt.Errorf("dashboard compras: %w", err)
	}
	out.PendingSales, out.PendingPurchases = len(sales), len(purchases)

	now := uc.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	month, err := uc.report.Generate(ctx, ReportFilters{StartDate: &first, EndDate: &now})
	if err != nil {
		return nil, fmt.Errorf("dashboard balance del mes: %w", err)
	}
	out.MonthlyRevenue = month.Summary.TotalRevenue
	out.MonthlyProfit = month.Summary.TotalProfit

	recent, err := uc.ledger.ListRecent(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("dashboard movimientos: %w", err)
	}
	out.RecentMovements = dto.NewMovementResponses(recent)
	out.DateLabel = fmt.Sprintf("%s %d", monthNames[now.Month()-1], now.Year())
	return &out, nil
}
