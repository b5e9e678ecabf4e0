package xlsx_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
	"github.com/jhoicas/gestion-inventario/internal/infrastructure/xlsx"
)

func TestRender_EscribeFilasYResumen(t *testing.T) {
	rep := &dto.BalanceReportDTO{
		From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Rows: []dto.BalanceRowDTO{
			{ProductName: "Cuaderno", Quantity: 3, Revenue: decimal.RequireFromString("29")},
			{ProductName: "Lápiz", Quantity: 13, Revenue: decimal.RequireFromString("13")},
		},
		Summary: dto.BalanceSummaryDTO{TotalRevenue: decimal.RequireFromString("42"), ItemsSold: 16, OrderCount: 3},
	}

	out, err := xlsx.NewBalanceReportXLSX().Render(context.Background(), rep)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(xlsx.SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Producto", header)

	name, _ := f.GetCellValue(xlsx.SheetName, "A3")
	assert.Equal(t, "Lápiz", name)
	qty, _ := f.GetCellValue(xlsx.SheetName, "C3")
	assert.Equal(t, "13", qty)

	orders, _ := f.GetCellValue("Resumen", "B8")
	assert.Equal(t, "3", orders)
}
