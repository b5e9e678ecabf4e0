package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
)

// OrderFilter filtros de consulta de órdenes. Los campos vacíos no filtran.
type OrderFilter struct {
	CounterpartyID string
	Statuses       []string
	From           *time.Time // OrderDate >= From
	To             *time.Time // OrderDate <= To
	Limit          int        // 0 = sin límite
}

// OrderRepository persiste órdenes de un tipo (ventas o compras) junto con sus ítems.
// Las listas se devuelven por OrderDate descendente.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la cabecera de la orden hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// UpdateStatus cambia solo Status y UpdatedAt; los ítems y el total no se editan.
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
}
