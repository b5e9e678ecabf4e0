package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de orden.
const (
	OrderKindSale     = "SALE"
	OrderKindPurchase = "PURCHASE"
)

// Estados de una orden (compartidos por ventas y compras).
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusReceived  = "RECEIVED" // recibida (compras) / entregada (ventas)
	OrderStatusCancelled = "CANCELLED"
)

// Order es la cabecera de una venta o compra. Es dueña de sus ítems;
// los ítems no conocen a su orden.
type Order struct {
	ID               string
	Kind             string
	CounterpartyID   string // cliente (venta) o proveedor (compra)
	CounterpartyName string
	Items            []OrderItem
	TotalAmount      decimal.Decimal
	OrderDate        time.Time
	Status           string
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	CreatedBy        string
}

// OrderItem es una línea de la orden. Subtotal = Quantity × UnitPrice.
type OrderItem struct {
	ID          string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// ProductIDs devuelve los productos distintos de la orden en el orden de sus líneas.
func (o *Order) ProductIDs() []string {
	seen := make(map[string]struct{}, len(o.Items))
	ids := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}

// Clone copia la orden y sus ítems (los adaptadores en memoria no comparten slices).
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = append([]OrderItem(nil), o.Items...)
	return &c
}

// ValidOrderStatus indica si s es uno de los estados conocidos.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusReceived, OrderStatusCancelled:
		return true
	}
	return false
}
