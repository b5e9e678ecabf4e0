package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
	"github.com/jhoicas/gestion-inventario/internal/application/inventory"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
)

// StockHandler expone el libro de movimientos de stock.
type StockHandler struct {
	uc *inventory.StockLedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockLedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// ListByProduct godoc
// @Summary      Movimientos de un producto (más reciente primero)
// @Tags         stock
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ListResponse[dto.MovementResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/product/{productId} [get]
func (h *StockHandler) ListByProduct(c *fiber.Ctx) error {
	list, err := h.uc.ListByProduct(c.Context(), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(dto.NewMovementResponses(list)))
}

// Current godoc
// @Summary      Stock actual de un producto
// @Tags         stock
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CurrentStockResponse
// @Router       /api/stock/product/{productId}/current [get]
func (h *StockHandler) Current(c *fiber.Ctx) error {
	id := c.Params("productId")
	stock, err := h.uc.CurrentStock(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CurrentStockResponse{ProductID: id, Stock: stock})
}

// Recent godoc
// @Summary      Últimos movimientos de todos los productos
// @Tags         stock
// @Produce      json
// @Param        limit  query  int  false  "Cantidad máxima"  default(10)
// @Success      200  {object}  dto.ListResponse[dto.MovementResponse]
// @Router       /api/stock/recent [get]
func (h *StockHandler) Recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit > 100 {
		limit = 100
	}
	list, err := h.uc.ListRecent(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(dto.NewMovementResponses(list)))
}

// Add godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body  body  dto.StockQuantityRequest  true  "Cantidad (> 0), motivo y usuario"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/product/{productId}/add [post]
func (h *StockHandler) Add(c *fiber.Ctx) error {
	return h.record(c, h.uc.RecordIn)
}

// Remove godoc
// @Summary      Registrar salida de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body  body  dto.StockQuantityRequest  true  "Cantidad (> 0), motivo y usuario"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/product/{productId}/remove [post]
func (h *StockHandler) Remove(c *fiber.Ctx) error {
	return h.record(c, h.uc.RecordOut)
}

// Adjust godoc
// @Summary      Ajustar stock a una cantidad final
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body  body  dto.StockQuantityRequest  true  "Stock final deseado (>= 0)"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/product/{productId}/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	return h.record(c, h.uc.RecordAdjustment)
}

type recordFunc func(ctx context.Context, productID string, quantity int, reason, actor string) (*entity.StockMovement, error)

func (h *StockHandler) record(c *fiber.Ctx, fn recordFunc) error {
	var in dto.StockQuantityRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	m, err := fn(c.Context(), c.Params("productId"), in.Quantity, in.Reason, actorFrom(c, in.Actor))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(m))
}
