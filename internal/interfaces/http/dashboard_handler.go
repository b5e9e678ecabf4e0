package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-inventario/internal/application/analytics"
)

// DashboardHandler maneja el resumen de la pantalla de inicio.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve conteos, órdenes pendientes, ventas del mes y últimos movimientos.
// GET /api/dashboard/summary
//
// No requiere parámetros; el mes se calcula en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
