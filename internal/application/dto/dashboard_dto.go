package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	Products          int `json:"products"`
	Customers         int `json:"customers"`
	Suppliers         int `json:"suppliers"`
	AvailableProducts int `json:"available_products"` // con stock > 0
	PendingSales      int `json:"pending_sales"`
	PendingPurchases  int `json:"pending_purchases"`

	// Ventas confirmadas/entregadas del mes en curso
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"`
	MonthlyProfit  decimal.Decimal `json:"monthly_profit"`

	RecentMovements []MovementResponse `json:"recent_movements"`
	DateLabel       string             `json:"date_label"` // ej: "Febrero 2026"
}
