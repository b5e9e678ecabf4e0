package analytics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-inventario/internal/application/analytics"
	"github.com/jhoicas/gestion-inventario/internal/application/dto"
)

type captureExporter struct {
	got *dto.BalanceReportDTO
}

func (c *captureExporter) Render(_ context.Context, rep *dto.BalanceReportDTO) ([]byte, error) {
	c.got = rep
	return []byte("ok"), nil
}

func (c *captureExporter) ContentType() string { return "text/plain" }

func TestRenderPDF_UsaElMismoReporte(t *testing.T) {
	repos := seed(t)
	pdf := &captureExporter{}
	uc := analytics.NewBalanceReportUseCase(repos.Sales, repos.Products).WithExporters(pdf, nil)

	out, err := uc.RenderPDF(context.Background(), analytics.ReportFilters{CustomerID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), out.Data)
	assert.Equal(t, "text/plain", out.ContentType)
	require.NotNil(t, pdf.got)
	assert.Equal(t, "c1", pdf.got.CustomerID)
	assert.Equal(t, 2, pdf.got.Summary.OrderCount)
}

func TestRenderXLSX_SinExportador(t *testing.T) {
	repos := seed(t)
	uc := analytics.NewBalanceReportUseCase(repos.Sales, repos.Products)

	_, err := uc.RenderXLSX(context.Background(), analytics.ReportFilters{})
	assert.ErrorIs(t, err, analytics.ErrExporterNotConfigured)
}
