package repository

import (
	"context"

	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
	// Serializa a los escritores del libro de stock de ese producto.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ListByName(ctx context.Context, name string) ([]*entity.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdatePricing actualiza solo precio de venta y costo (recepción de compras).
	UpdatePricing(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}
