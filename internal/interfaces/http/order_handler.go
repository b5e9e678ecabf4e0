package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
)

type orderAction func(ctx context.Context, id string) (*entity.Order, error)

// transition ejecuta una acción del ciclo de vida y devuelve la orden actualizada.
func transition(c *fiber.Ctx, fn orderAction) error {
	o, err := fn(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(o))
}

// orderLister lecturas comunes de ventas y compras.
type orderLister interface {
	List(ctx context.Context) ([]*entity.Order, error)
	ListByStatus(ctx context.Context, status string) ([]*entity.Order, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Order, error)
}

// listOrders aplica el primer filtro presente: recent, status, contraparte; si no hay, lista todo.
func listOrders(c *fiber.Ctx, l orderLister, byParty func(ctx context.Context, id string) ([]*entity.Order, error), partyParam string) error {
	var (
		list []*entity.Order
		err  error
	)
	ctx := c.Context()
	switch {
	case c.QueryInt("recent") > 0:
		list, err = l.ListRecent(ctx, c.QueryInt("recent"))
	case c.Query("status") != "":
		list, err = l.ListByStatus(ctx, c.Query("status"))
	case c.Query(partyParam) != "":
		list, err = byParty(ctx, c.Query(partyParam))
	default:
		list, err = l.List(ctx)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(dto.NewOrderResponses(list)))
}

func getOrder(c *fiber.Ctx, get orderAction) error {
	o, err := get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(o))
}
