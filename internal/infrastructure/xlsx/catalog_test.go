package xlsx_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/gestion-inventario/internal/infrastructure/xlsx"
)

func catalogBook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	all := append([][]any{{"Nombre", "Categoría", "Costo", "Margen %", "Precio", "Stock inicial", "Descripción"}}, rows...)
	for i, r := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadCatalog(t *testing.T) {
	buf := catalogBook(t, [][]any{
		{"Cuaderno", "papelería", "6", "15", "", 10, "100 hojas"},
		{"", "", "", "", "", "", ""},
		{"Lápiz", "", "0,40", "", "1.00", "", ""},
	})

	rows, err := xlsx.ReadCatalog(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Cuaderno", rows[0].Name)
	assert.Equal(t, "15", rows[0].ProfitMargin.String())
	assert.True(t, rows[0].Price.IsZero())
	assert.Equal(t, 10, rows[0].InitialStock)
	assert.Equal(t, "100 hojas", rows[0].Description)

	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "0.4", rows[1].PurchasePrice.String())
	assert.Equal(t, "1", rows[1].Price.String())
}

func TestReadCatalog_StockInvalido(t *testing.T) {
	buf := catalogBook(t, [][]any{{"Cuaderno", "", "6", "", "", "-3", ""}})

	_, err := xlsx.ReadCatalog(buf)
	assert.ErrorContains(t, err, "fila 2")
}
