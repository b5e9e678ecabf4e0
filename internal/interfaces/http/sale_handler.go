package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
	"github.com/jhoicas/gestion-inventario/internal/application/sales"
)

// SaleHandler endpoints de órdenes de venta.
type SaleHandler struct {
	uc *sales.SaleOrderUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleOrderUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear venta (PENDING)
// @Description  Valida cliente, productos y stock disponible. No descuenta stock hasta confirmar.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Cliente e ítems; unit_price opcional (precio de lista)"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	o, err := h.uc.Create(c.Context(), in.CustomerID, in.Items, in.Notes, actorFrom(c, in.CreatedBy))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrderResponse(o))
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	return getOrder(c, h.uc.GetByID)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Produce      json
// @Param        status       query  string  false  "PENDING, CONFIRMED, RECEIVED (entregada), CANCELLED"
// @Param        customer_id  query  string  false  "Ventas de un cliente"
// @Param        recent       query  int     false  "Solo las N más recientes"
// @Success      200  {object}  dto.ListResponse[dto.OrderResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	return listOrders(c, h.uc, h.uc.ListByCustomer, "customer_id")
}

// Confirm godoc
// @Summary      Confirmar venta (descuenta stock)
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/confirm [post]
func (h *SaleHandler) Confirm(c *fiber.Ctx) error {
	return transition(c, h.uc.Confirm)
}

// Deliver godoc
// @Summary      Marcar venta como entregada
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/deliver [post]
func (h *SaleHandler) Deliver(c *fiber.Ctx) error {
	return transition(c, h.uc.Deliver)
}

// Cancel godoc
// @Summary      Cancelar venta (devuelve stock si estaba confirmada)
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	return transition(c, h.uc.Cancel)
}
