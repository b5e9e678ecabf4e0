// Package order contiene la tabla de transiciones del ciclo de vida de ventas y compras.
// Los casos de uso consultan la tabla en un solo punto (Next) en lugar de repetir
// condicionales por operación.
package order

import (
	"github.com/jhoicas/gestion-inventario/internal/domain"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
)

// Action es una operación del ciclo de vida.
type Action string

const (
	ActionConfirm Action = "confirm"
	ActionDeliver Action = "deliver" // ventas
	ActionReceive Action = "receive" // compras
	ActionCancel  Action = "cancel"
)

// LedgerEffect indica qué debe hacer la transición con el libro de stock.
type LedgerEffect int

const (
	EffectNone   LedgerEffect = iota
	EffectDebit                // una salida (OUT) por línea
	EffectCredit               // una entrada (IN) por línea
)

type edge struct {
	action Action
	from   string
}

// Transition es el resultado de aplicar una acción válida.
type Transition struct {
	From   string
	To     string
	Effect LedgerEffect
}

var tables = map[string]map[edge]Transition{
	entity.OrderKindSale: {
		{ActionConfirm, entity.OrderStatusPending}:   {entity.OrderStatusPending, entity.OrderStatusConfirmed, EffectDebit},
		{ActionDeliver, entity.OrderStatusConfirmed}: {entity.OrderStatusConfirmed, entity.OrderStatusReceived, EffectNone},
		{ActionCancel, entity.OrderStatusPending}:    {entity.OrderStatusPending, entity.OrderStatusCancelled, EffectNone},
		{ActionCancel, entity.OrderStatusConfirmed}:  {entity.OrderStatusConfirmed, entity.OrderStatusCancelled, EffectCredit},
	},
	entity.OrderKindPurchase: {
		{ActionConfirm, entity.OrderStatusPending}:   {entity.OrderStatusPending, entity.OrderStatusConfirmed, EffectNone},
		{ActionReceive, entity.OrderStatusConfirmed}: {entity.OrderStatusConfirmed, entity.OrderStatusReceived, EffectCredit},
		{ActionCancel, entity.OrderStatusPending}:    {entity.OrderStatusPending, entity.OrderStatusCancelled, EffectNone},
		// Una compra recibida no se cancela: la recepción es el punto de commit.
		{ActionCancel, entity.OrderStatusConfirmed}: {entity.OrderStatusConfirmed, entity.OrderStatusCancelled, EffectNone},
	},
}

// Next valida la acción contra la tabla del tipo de orden y devuelve la transición.
// Devuelve *domain.InvalidStateError si la acción no está permitida desde el estado actual.
func Next(o *entity.Order, action Action) (Transition, error) {
	t, ok := tables[o.Kind][edge{action, o.Status}]
	if !ok {
		return Transition{}, &domain.InvalidStateError{
			Kind:    o.Kind,
			OrderID: o.ID,
			From:    o.Status,
			Action:  string(action),
		}
	}
	return t, nil
}

// Allowed devuelve las acciones válidas desde el estado actual (para las vistas).
func Allowed(kind, status string) []Action {
	var out []Action
	for _, a := range []Action{ActionConfirm, ActionDeliver, ActionReceive, ActionCancel} {
		if _, ok := tables[kind][edge{a, status}]; ok {
			out = append(out, a)
		}
	}
	return out
}

// IsTerminal indica si el estado no admite más transiciones.
func IsTerminal(status string) bool {
	return status == entity.OrderStatusReceived || status == entity.OrderStatusCancelled
}
