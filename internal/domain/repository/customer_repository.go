package repository

import (
	"context"

	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByDocument(ctx context.Context, document string) (*entity.Customer, error)
	List(ctx context.Context) ([]*entity.Customer, error)
	ListByName(ctx context.Context, name string) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}
