package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
	"github.com/jhoicas/gestion-inventario/internal/application/purchasing"
)

// PurchaseHandler endpoints de órdenes de compra.
type PurchaseHandler struct {
	uc *purchasing.PurchaseOrderUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchasing.PurchaseOrderUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear compra (PENDING)
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "Proveedor e ítems con unit_price"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	o, err := h.uc.Create(c.Context(), in.SupplierID, in.Items, in.Notes, actorFrom(c, in.CreatedBy))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrderResponse(o))
}

// GetByID godoc
// @Summary      Obtener compra
// @Tags         purchases
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	return getOrder(c, h.uc.GetByID)
}

// List godoc
// @Summary      Listar compras
// @Tags         purchases
// @Produce      json
// @Param        status       query  string  false  "PENDING, CONFIRMED, RECEIVED, CANCELLED"
// @Param        supplier_id  query  string  false  "Compras de un proveedor"
// @Param        recent       query  int     false  "Solo las N más recientes"
// @Success      200  {object}  dto.ListResponse[dto.OrderResponse]
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	return listOrders(c, h.uc, h.uc.ListBySupplier, "supplier_id")
}

// Confirm godoc
// @Summary      Confirmar compra
// @Tags         purchases
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/confirm [post]
func (h *PurchaseHandler) Confirm(c *fiber.Ctx) error {
	return transition(c, h.uc.Confirm)
}

// Receive godoc
// @Summary      Recibir compra (ingresa stock y actualiza precios)
// @Tags         purchases
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/receive [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	return transition(c, h.uc.Receive)
}

// Cancel godoc
// @Summary      Cancelar compra (solo antes de recibir)
// @Tags         purchases
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/cancel [post]
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	return transition(c, h.uc.Cancel)
}
