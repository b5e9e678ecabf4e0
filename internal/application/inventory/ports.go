package inventory

import (
	"context"

	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil, Rollback en cualquier otro caso. Garantiza atomicidad para el libro
// de stock y para las transiciones de órdenes que lo afectan.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.TxRepositories) error) error
}
