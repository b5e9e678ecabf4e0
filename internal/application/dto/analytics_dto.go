package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceReportRequest parámetros de GET /api/reports/balance.
type BalanceReportRequest struct {
	ProductID  string `query:"product_id"`
	CustomerID string `query:"customer_id"`
	StartDate  string `query:"start_date"` // YYYY-MM-DD; vacío = sin límite inferior
	EndDate    string `query:"end_date"`   // YYYY-MM-DD; vacío = sin límite superior
}

// BalanceRowDTO rentabilidad de un producto en el período.
// Costo = precio de compra ACTUAL × cantidad (no el costo histórico de la venta).
type BalanceRowDTO struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Category     string          `json:"category"`
	Quantity     int             `json:"quantity"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`        // Revenue - Cost
	MarginPct    decimal.Decimal `json:"margin_pct"`    // Profit / Revenue * 100
	AveragePrice decimal.Decimal `json:"average_price"` // Revenue / Quantity
}

// BalanceSummaryDTO totales del reporte.
type BalanceSummaryDTO struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	MarginPct    decimal.Decimal `json:"margin_pct"`
	ItemsSold    int             `json:"items_sold"`
	OrderCount   int             `json:"order_count"` // órdenes distintas, no líneas
}

// BalanceReportDTO respuesta de GET /api/reports/balance.
type BalanceReportDTO struct {
	From        time.Time         `json:"from"`
	To          time.Time         `json:"to"`
	ProductID   string            `json:"product_id,omitempty"`
	CustomerID  string            `json:"customer_id,omitempty"`
	Rows        []BalanceRowDTO   `json:"rows"`
	Summary     BalanceSummaryDTO `json:"summary"`
	GeneratedAt time.Time         `json:"generated_at"`
}
