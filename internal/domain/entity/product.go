package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// El stock no vive aquí: se deriva del último StockMovement del producto.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         decimal.Decimal // precio de venta (lista)
	PurchasePrice decimal.Decimal // costo de la última compra recibida
	ProfitMargin  decimal.Decimal // margen en porcentaje (30.00 = 30%)
	Category      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
