package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/gestion-inventario/internal/domain/inventory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSalePriceFromMargin(t *testing.T) {
	cases := []struct {
		cost, margin, want string
	}{
		{"10.00", "30", "13.00"},
		{"9.99", "15", "11.49"},   // 11.4885 → 11.49
		{"1.15", "10", "1.27"},    // 1.265 → 1.27 (mitad hacia arriba)
		{"100", "0.5", "100.50"},
		{"7.33", "33.33", "9.77"}, // 9.773089 → 9.77
	}
	for _, tc := range cases {
		got := inventory.SalePriceFromMargin(dec(tc.cost), dec(tc.margin))
		assert.True(t, got.Equal(dec(tc.want)), "costo %s margen %s: esperado %s, obtenido %s", tc.cost, tc.margin, tc.want, got)
	}
}

func TestMarginPercent(t *testing.T) {
	assert.True(t, inventory.MarginPercent(dec("25"), dec("100")).Equal(dec("25")))
	// 1/3 = 0.3333 (4 decimales) → 33.33
	assert.True(t, inventory.MarginPercent(dec("1"), dec("3")).Equal(dec("33.33")))
	// 2/3 = 0.6667 → 66.67
	assert.True(t, inventory.MarginPercent(dec("2"), dec("3")).Equal(dec("66.67")))
	assert.True(t, inventory.MarginPercent(dec("-5"), dec("0")).IsZero(), "sin ingreso el margen es 0")
}

func TestAveragePrice(t *testing.T) {
	assert.True(t, inventory.AveragePrice(dec("10"), 3).Equal(dec("3.33")))
	assert.True(t, inventory.AveragePrice(dec("10"), 0).IsZero())
}

func TestLineSubtotal(t *testing.T) {
	assert.True(t, inventory.LineSubtotal(4, dec("2.50")).Equal(dec("10")))
}
