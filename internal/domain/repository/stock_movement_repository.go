package repository

import (
	"context"

	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
)

// StockMovementRepository es el puerto del libro de stock. Solo permite agregar:
// no existe Update ni Delete.
type StockMovementRepository interface {
	// Append persiste el movimiento y asigna ID/Seq si vienen vacíos.
	Append(ctx context.Context, movement *entity.StockMovement) error
	// Latest devuelve el movimiento más reciente del producto (CreatedAt DESC, Seq DESC) o nil.
	Latest(ctx context.Context, productID string) (*entity.StockMovement, error)
	// ListByProduct lista los movimientos del producto, más recientes primero.
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
	// ListRecent lista los últimos movimientos de todos los productos.
	ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error)
}
