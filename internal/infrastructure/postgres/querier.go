package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx: los repositorios funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Querier = (*pgxpool.Pool)(nil)
	_ Querier = (pgx.Tx)(nil)
)

// NewRepositories construye todos los repositorios sobre q (pool o tx).
func NewRepositories(q Querier) repository.TxRepositories {
	return repository.TxRepositories{
		Movements: NewStockMovementRepository(q),
		Products:  NewProductRepository(q),
		Customers: NewCustomerRepository(q),
		Suppliers: NewSupplierRepository(q),
		Sales:     NewSaleOrderRepository(q),
		Purchases: NewPurchaseOrderRepository(q),
	}
}
