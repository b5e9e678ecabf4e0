package repository

import (
	"context"

	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByDocument(ctx context.Context, document string) (*entity.Supplier, error)
	List(ctx context.Context) ([]*entity.Supplier, error)
	ListByName(ctx context.Context, name string) ([]*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}
