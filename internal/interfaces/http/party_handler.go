package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
)

// partyService operaciones comunes de clientes y proveedores.
type partyService interface {
	Create(ctx context.Context, in dto.PartyRequest) (*dto.PartyResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PartyResponse, error)
	Update(ctx context.Context, id string, in dto.PartyRequest) (*dto.PartyResponse, error)
	List(ctx context.Context, name string) ([]dto.PartyResponse, error)
	Delete(ctx context.Context, id string) error
}

// PartyHandler CRUD HTTP de clientes o proveedores; la ruta decide cuál.
type PartyHandler struct {
	uc partyService
}

// NewPartyHandler construye el handler sobre CustomerUseCase o SupplierUseCase.
func NewPartyHandler(uc partyService) *PartyHandler {
	return &PartyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente o proveedor
// @Tags         customers, suppliers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PartyRequest  true  "Datos de contacto"
// @Success      201   {object}  dto.PartyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
// @Router       /api/suppliers [post]
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente o proveedor
// @Tags         customers, suppliers
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.PartyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
// @Router       /api/suppliers/{id} [get]
func (h *PartyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar clientes o proveedores
// @Tags         customers, suppliers
// @Produce      json
// @Param        name  query  string  false  "Filtra por nombre"
// @Success      200   {object}  dto.ListResponse[dto.PartyResponse]
// @Router       /api/customers [get]
// @Router       /api/suppliers [get]
func (h *PartyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// Update godoc
// @Summary      Actualizar cliente o proveedor
// @Tags         customers, suppliers
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.PartyRequest  true  "Datos de contacto"
// @Success      200   {object}  dto.PartyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
// @Router       /api/suppliers/{id} [put]
func (h *PartyHandler) Update(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente o proveedor
// @Tags         customers, suppliers
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
// @Router       /api/suppliers/{id} [delete]
func (h *PartyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
