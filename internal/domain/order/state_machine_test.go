package order_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-inventario/internal/domain"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	"github.com/jhoicas/gestion-inventario/internal/domain/order"
)

func TestNext_Venta(t *testing.T) {
	cases := []struct {
		name   string
		from   string
		action order.Action
		to     string
		effect order.LedgerEffect
	}{
		{"confirmar pendiente", entity.OrderStatusPending, order.ActionConfirm, entity.OrderStatusConfirmed, order.EffectDebit},
		{"entregar confirmada", entity.OrderStatusConfirmed, order.ActionDeliver, entity.OrderStatusReceived, order.EffectNone},
		{"cancelar pendiente", entity.OrderStatusPending, order.ActionCancel, entity.OrderStatusCancelled, order.EffectNone},
		{"cancelar confirmada devuelve stock", entity.OrderStatusConfirmed, order.ActionCancel, entity.OrderStatusCancelled, order.EffectCredit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := &entity.Order{ID: "o1", Kind: entity.OrderKindSale, Status: tc.from}
			tr, err := order.Next(o, tc.action)
			require.NoError(t, err)
			assert.Equal(t, tc.to, tr.To)
			assert.Equal(t, tc.effect, tr.Effect)
		})
	}
}

func TestNext_Compra(t *testing.T) {
	o := &entity.Order{ID: "p1", Kind: entity.OrderKindPurchase, Status: entity.OrderStatusConfirmed}
	tr, err := order.Next(o, order.ActionReceive)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReceived, tr.To)
	assert.Equal(t, order.EffectCredit, tr.Effect)

	tr, err = order.Next(o, order.ActionCancel)
	require.NoError(t, err)
	assert.Equal(t, order.EffectNone, tr.Effect, "cancelar una compra nunca toca el stock")
}

func TestNext_TransicionesInvalidas(t *testing.T) {
	cases := []struct {
		kind   string
		from   string
		action order.Action
	}{
		{entity.OrderKindSale, entity.OrderStatusConfirmed, order.ActionConfirm},
		{entity.OrderKindSale, entity.OrderStatusPending, order.ActionDeliver},
		{entity.OrderKindSale, entity.OrderStatusReceived, order.ActionCancel},
		{entity.OrderKindSale, entity.OrderStatusCancelled, order.ActionCancel},
		{entity.OrderKindSale, entity.OrderStatusConfirmed, order.ActionReceive},
		{entity.OrderKindPurchase, entity.OrderStatusPending, order.ActionReceive},
		{entity.OrderKindPurchase, entity.OrderStatusReceived, order.ActionCancel},
		{entity.OrderKindPurchase, entity.OrderStatusConfirmed, order.ActionDeliver},
	}
	for _, tc := range cases {
		o := &entity.Order{ID: "x", Kind: tc.kind, Status: tc.from}
		_, err := order.Next(o, tc.action)
		require.Error(t, err, "%s %s desde %s", tc.kind, tc.action, tc.from)
		assert.True(t, errors.Is(err, domain.ErrInvalidState))

		var stateErr *domain.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, tc.from, stateErr.From)
	}
}

func TestAllowed(t *testing.T) {
	assert.ElementsMatch(t,
		[]order.Action{order.ActionConfirm, order.ActionCancel},
		order.Allowed(entity.OrderKindSale, entity.OrderStatusPending))
	assert.ElementsMatch(t,
		[]order.Action{order.ActionReceive, order.ActionCancel},
		order.Allowed(entity.OrderKindPurchase, entity.OrderStatusConfirmed))
	assert.Empty(t, order.Allowed(entity.OrderKindSale, entity.OrderStatusReceived))
	assert.True(t, order.IsTerminal(entity.OrderStatusCancelled))
	assert.False(t, order.IsTerminal(entity.OrderStatusConfirmed))
}
