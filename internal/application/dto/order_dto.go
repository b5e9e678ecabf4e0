package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	"github.com/jhoicas/gestion-inventario/internal/domain/order"
)

// OrderItemRequest línea de una orden. En ventas UnitPrice es opcional (precio de lista);
// en compras es obligatorio.
type OrderItemRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID string             `json:"customer_id" validate:"required"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes      string             `json:"notes" validate:"max=1000"`
	CreatedBy  string             `json:"created_by" validate:"max=100"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierID string             `json:"supplier_id" validate:"required"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes      string             `json:"notes" validate:"max=1000"`
	CreatedBy  string             `json:"created_by" validate:"max=100"`
}

// OrderItemResponse línea de una orden.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de una venta o compra. AllowedActions lista las transiciones
// válidas desde el estado actual.
type OrderResponse struct {
	ID               string              `json:"id"`
	Kind             string              `json:"kind"`
	CounterpartyID   string              `json:"counterparty_id"`
	CounterpartyName string              `json:"counterparty_name"`
	Items            []OrderItemResponse `json:"items"`
	TotalAmount      decimal.Decimal     `json:"total_amount"`
	OrderDate        time.Time           `json:"order_date"`
	Status           string              `json:"status"`
	AllowedActions   []string            `json:"allowed_actions"`
	Notes            string              `json:"notes"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	CreatedBy        string              `json:"created_by"`
}

// NewOrderResponse mapea la orden a su respuesta.
func NewOrderResponse(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	actions := []string{}
	for _, a := range order.Allowed(o.Kind, o.Status) {
		actions = append(actions, string(a))
	}
	return OrderResponse{
		ID:               o.ID,
		Kind:             o.Kind,
		CounterpartyID:   o.CounterpartyID,
		CounterpartyName: o.CounterpartyName,
		Items:            items,
		TotalAmount:      o.TotalAmount,
		OrderDate:        o.OrderDate,
		Status:           o.Status,
		AllowedActions:   actions,
		Notes:            o.Notes,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		CreatedBy:        o.CreatedBy,
	}
}

// NewOrderResponses mapea una lista de órdenes.
func NewOrderResponses(list []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, NewOrderResponse(o))
	}
	return out
}
