// Package xlsx exporta el reporte de balance a Excel.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
)

const (
	SheetName   = "Balance"
	summaryName = "Resumen"
)

var headings = []string{"Producto", "Categoría", "Cantidad", "Ingreso", "Costo", "Utilidad", "Margen %", "Precio promedio"}

// BalanceReportXLSX implementa analytics.ReportExporter con excelize.
type BalanceReportXLSX struct{}

// NewBalanceReportXLSX construye el exportador.
func NewBalanceReportXLSX() *BalanceReportXLSX { return &BalanceReportXLSX{} }

// ContentType tipo MIME del libro.
func (BalanceReportXLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render escribe una hoja con las filas por producto y otra con el resumen.
func (x *BalanceReportXLSX) Render(_ context.Context, rep *dto.BalanceReportDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(summaryName); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja resumen: %w", err)
	}

	if err := setRow(f, SheetName, 1, toAny(headings)...); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(headings), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}

	for i, r := range rep.Rows {
		if err := setRow(f, SheetName, i+2,
			r.ProductName,
			r.Category,
			r.Quantity,
			r.Revenue.InexactFloat64(),
			r.Cost.InexactFloat64(),
			r.Profit.InexactFloat64(),
			r.MarginPct.InexactFloat64(),
			r.AveragePrice.InexactFloat64(),
		); err != nil {
			return nil, err
		}
	}

	s := rep.Summary
	summary := [][]any{
		{"Desde", rep.From.Format("2006-01-02")},
		{"Hasta", rep.To.Format("2006-01-02")},
		{"Ingresos", s.TotalRevenue.InexactFloat64()},
		{"Costos", s.TotalCost.InexactFloat64()},
		{"Utilidad", s.TotalProfit.InexactFloat64()},
		{"Margen %", s.MarginPct.InexactFloat64()},
		{"Unidades vendidas", s.ItemsSold},
		{"Órdenes", s.OrderCount},
	}
	for i, values := range summary {
		if err := setRow(f, summaryName, i+1, values...); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, rowNo int, values ...any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNo)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("xlsx: celda %s: %w", cell, err)
		}
	}
	return nil
}

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
