package analytics

import (
	"context"
	"errors"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
)

// ReportExporter serializa un reporte ya calculado (PDF, XLSX).
type ReportExporter interface {
	Render(ctx context.Context, rep *dto.BalanceReportDTO) ([]byte, error)
	ContentType() string
}

// ErrExporterNotConfigured se devuelve si el formato pedido no tiene exportador.
var ErrExporterNotConfigured = errors.New("exportador de reporte no configurado")

// Export documento binario listo para descargar.
type Export struct {
	Data        []byte
	ContentType string
}

// WithExporters registra los exportadores PDF y XLSX. Cualquiera puede ser nil.
func (uc *BalanceReportUseCase) WithExporters(pdf, xlsx ReportExporter) *BalanceReportUseCase {
	uc.pdf, uc.xlsx = pdf, xlsx
	return uc
}

// RenderPDF genera el reporte y lo exporta a PDF.
func (uc *BalanceReportUseCase) RenderPDF(ctx context.Context, f ReportFilters) (*Export, error) {
	return uc.render(ctx, uc.pdf, f)
}

// RenderXLSX genera el reporte y lo exporta a Excel.
func (uc *BalanceReportUseCase) RenderXLSX(ctx context.Context, f ReportFilters) (*Export, error) {
	return uc.render(ctx, uc.xlsx, f)
}

func (uc *BalanceReportUseCase) render(ctx context.Context, exp ReportExporter, f ReportFilters) (*Export, error) {
	if exp == nil {
		return nil, ErrExporterNotConfigured
	}
	rep, err := uc.Generate(ctx, f)
	if err != nil {
		return nil, err
	}
	data, err := exp.Render(ctx, rep)
	if err != nil {
		return nil, err
	}
	return &Export{Data: data, ContentType: exp.ContentType()}, nil
}
