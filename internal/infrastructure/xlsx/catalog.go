package xlsx

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// CatalogRow una fila del catálogo de productos a importar.
//
// Columnas esperadas en la primera hoja, con encabezado en la fila 1:
// Nombre | Categoría | Costo | Margen % | Precio | Stock inicial | Descripción
type CatalogRow struct {
	Line          int // fila en la hoja (1-based), para reportar errores
	Name          string
	Category      string
	PurchasePrice decimal.Decimal
	ProfitMargin  decimal.Decimal
	Price         decimal.Decimal // cero = calcular desde costo y margen
	InitialStock  int
	Description   string
}

// ReadCatalog lee el libro y devuelve las filas con nombre. Las filas vacías se omiten.
func ReadCatalog(r io.Reader) ([]CatalogRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: abrir catálogo: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx: el libro no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer filas: %w", err)
	}

	var out []CatalogRow
	for i, cells := range rows {
		if i == 0 {
			continue
		}
		col := func(n int) string {
			if n < len(cells) {
				return strings.TrimSpace(cells[n])
			}
			return ""
		}
		if col(0) == "" {
			continue
		}
		row := CatalogRow{Line: i + 1, Name: col(0), Category: col(1), Description: col(6)}
		if row.PurchasePrice, err = parseDecimal(col(2)); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d costo: %w", row.Line, err)
		}
		if row.ProfitMargin, err = parseDecimal(col(3)); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d margen: %w", row.Line, err)
		}
		if row.Price, err = parseDecimal(col(4)); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d precio: %w", row.Line, err)
		}
		if s := col(5); s != "" {
			if row.InitialStock, err = strconv.Atoi(s); err != nil || row.InitialStock < 0 {
				return nil, fmt.Errorf("xlsx: fila %d stock inicial inválido: %q", row.Line, s)
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}
