package http

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-inventario/internal/application/analytics"
	"github.com/jhoicas/gestion-inventario/internal/application/dto"
)

const dateLayout = "2006-01-02"

// ReportHandler endpoints del balance de ventas.
type ReportHandler struct {
	uc *analytics.BalanceReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.BalanceReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Balance godoc
// @Summary      Balance de ventas por producto
// @Description  Ingresos, costo (precio de compra vigente), utilidad y margen de las ventas
//
//	CONFIRMED/RECEIVED del período. Fechas inclusivas por día completo.
//
// @Tags         reports
// @Produce      json
// @Param        product_id   query  string  false  "Filtra por producto"
// @Param        customer_id  query  string  false  "Filtra por cliente"
// @Param        start_date   query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "Fin (YYYY-MM-DD)"
// @Success      200  {object}  dto.BalanceReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/balance [get]
func (h *ReportHandler) Balance(c *fiber.Ctx) error {
	f, err := parseReportFilters(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: err.Error()})
	}
	rep, err := h.uc.Generate(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rep)
}

// BalancePDF godoc
// @Summary      Balance de ventas en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        product_id   query  string  false  "Filtra por producto"
// @Param        customer_id  query  string  false  "Filtra por cliente"
// @Param        start_date   query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "Fin (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/balance.pdf [get]
func (h *ReportHandler) BalancePDF(c *fiber.Ctx) error {
	return h.download(c, h.uc.RenderPDF, "pdf")
}

// BalanceXLSX godoc
// @Summary      Balance de ventas en Excel
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        product_id   query  string  false  "Filtra por producto"
// @Param        customer_id  query  string  false  "Filtra por cliente"
// @Param        start_date   query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "Fin (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/balance.xlsx [get]
func (h *ReportHandler) BalanceXLSX(c *fiber.Ctx) error {
	return h.download(c, h.uc.RenderXLSX, "xlsx")
}

func (h *ReportHandler) download(c *fiber.Ctx, render func(ctx context.Context, f analytics.ReportFilters) (*analytics.Export, error), ext string) error {
	f, err := parseReportFilters(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: err.Error()})
	}
	out, err := render(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="balance_%s.%s"`, time.Now().Format("20060102"), ext))
	return c.Send(out.Data)
}

func parseReportFilters(c *fiber.Ctx) (analytics.ReportFilters, error) {
	var req dto.BalanceReportRequest
	if err := c.QueryParser(&req); err != nil {
		return analytics.ReportFilters{}, errors.New("parámetros de consulta inválidos")
	}
	f := analytics.ReportFilters{ProductID: req.ProductID, CustomerID: req.CustomerID}
	var err error
	if f.StartDate, err = parseDate("start_date", req.StartDate); err != nil {
		return f, err
	}
	if f.EndDate, err = parseDate("end_date", req.EndDate); err != nil {
		return f, err
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return f, errors.New("end_date no puede ser anterior a start_date")
	}
	return f, nil
}

func parseDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%s debe tener formato YYYY-MM-DD", field)
	}
	return &t, nil
}
