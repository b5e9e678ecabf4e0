package inventory

import "github.com/shopspring/decimal"

// MoneyScale es la escala fija de los valores monetarios.
const MoneyScale = 2

// marginScale es la precisión intermedia del margen antes de pasar a porcentaje.
const marginScale = 4

var hundred = decimal.NewFromInt(100)

// RoundMoney redondea a 2 decimales, mitad hacia arriba (lejos de cero).
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// SalePriceFromMargin calcula el precio de venta a partir del costo y el margen:
// PrecioVenta = Costo × (1 + Margen/100), redondeado a 2 decimales.
func SalePriceFromMargin(unitCost, marginPct decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(marginPct.Div(hundred))
	return RoundMoney(unitCost.Mul(factor))
}

// MarginPercent devuelve utilidad/ingreso × 100 con 4 decimales intermedios y 2 finales.
// Si el ingreso no es positivo devuelve 0.
func MarginPercent(profit, revenue decimal.Decimal) decimal.Decimal {
	if !revenue.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return profit.DivRound(revenue, marginScale).Mul(hundred).Round(MoneyScale)
}

// AveragePrice devuelve ingreso/cantidad a 2 decimales, o 0 si no hay cantidad.
func AveragePrice(revenue decimal.Decimal, quantity int) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	return revenue.DivRound(decimal.NewFromInt(int64(quantity)), MoneyScale)
}

// LineSubtotal = cantidad × precio unitario.
func LineSubtotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
