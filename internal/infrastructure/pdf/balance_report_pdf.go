// Package pdf genera el reporte de balance de ventas en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app    │  Período + fecha de emisión   │
//	│  FILTROS: producto / cliente                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Cant | Ingreso | Costo | Utilidad | Margen│
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Ingresos / Costos / Utilidad / Margen / Órdenes    │
//	│  NOTA: el costo usa el precio de compra vigente              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// BalanceReportPDF implementa analytics.ReportExporter usando Maroto v2.
type BalanceReportPDF struct {
	title string
}

// NewBalanceReportPDF construye el generador; title encabeza cada página.
func NewBalanceReportPDF(title string) *BalanceReportPDF {
	return &BalanceReportPDF{title: title}
}

// ContentType tipo MIME del documento.
func (g *BalanceReportPDF) ContentType() string { return "application/pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *BalanceReportPDF) Render(_ context.Context, rep *dto.BalanceReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Balance de ventas", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, rep))
	m.AddRows(filtersRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(rep.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin ventas confirmadas en el período.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(tableDetailRows(rep.Rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(rep.Summary))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("El costo se calcula con el precio de compra vigente de cada producto, no con el costo histórico de la venta.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, rep *dto.BalanceReportDTO) core.Row {
	period := fmt.Sprintf("%s - %s", rep.From.Format("02/01/2006"), rep.To.Format("02/01/2006"))
	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("BALANCE DE VENTAS POR PRODUCTO", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Período: "+period, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2}),
			text.New("Emitido: "+rep.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func filtersRow(rep *dto.BalanceReportDTO) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Producto: %s   |   Cliente: %s",
			nonEmpty(rep.ProductID, "todos"), nonEmpty(rep.CustomerID, "todos"),
		), props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 3, align.Left),
		h("Cant.", 1, align.Center),
		h("Ingreso", 2, align.Right),
		h("Costo", 2, align.Right),
		h("Utilidad", 2, align.Right),
		h("Margen", 1, align.Right),
		h("P. prom.", 1, align.Right),
	)
}

func tableDetailRows(rows []dto.BalanceRowDTO) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(7).Add(
			cell(r.ProductName, 3, align.Left),
			cell(fmt.Sprint(r.Quantity), 1, align.Center),
			cell(FormatMoney(r.Revenue), 2, align.Right),
			cell(FormatMoney(r.Cost), 2, align.Right),
			cell(FormatMoney(r.Profit), 2, align.Right),
			cell(r.MarginPct.StringFixed(2)+"%", 1, align.Right),
			cell(FormatMoney(r.AveragePrice), 1, align.Right),
		))
	}
	return result
}

func summaryRow(s dto.BalanceSummaryDTO) core.Row {
	lines := [][2]string{
		{"Ingresos:", FormatMoney(s.TotalRevenue)},
		{"Costos:", FormatMoney(s.TotalCost)},
		{"Utilidad:", FormatMoney(s.TotalProfit)},
		{"Margen:", s.MarginPct.StringFixed(2) + "%"},
		{"Unidades / Órdenes:", fmt.Sprintf("%d / %d", s.ItemsSold, s.OrderCount)},
	}
	labels, values := col.New(3), col.New(3)
	for i, l := range lines {
		top := float64(2 + i*6)
		style := fontstyle.Normal
		if i == 2 {
			style = fontstyle.Bold
		}
		labels.Add(text.New(l[0], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}))
		values.Add(text.New(l[1], props.Text{Style: style, Size: 9, Align: align.Right, Right: 1, Top: top}))
	}
	return row.New(34).Add(col.New(6), labels, values)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// FormatMoney formatea con separador de miles "." y decimales ",".
// Ej: 1234567.5 → "$1.234.567,50", -3 → "-$3,00"
func FormatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + string(buf) + "," + frac
}
