package dto

import (
	"time"

	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
)

// StockQuantityRequest body para POST /api/stock/product/:productId/{add,remove}.
// En /adjust, Quantity es el stock final deseado.
type StockQuantityRequest struct {
	Quantity int    `json:"quantity" validate:"min=0"`
	Reason   string `json:"reason" validate:"max=500"`
	Actor    string `json:"actor" validate:"max=100"`
}

// MovementResponse salida de un movimiento del libro de stock.
type MovementResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	Type         string    `json:"type"`
	Quantity     int       `json:"quantity"`
	BalanceAfter int       `json:"balance_after"`
	Reason       string    `json:"reason"`
	CreatedAt    time.Time `json:"created_at"`
	CreatedBy    string    `json:"created_by"`
}

// CurrentStockResponse stock actual de un producto.
type CurrentStockResponse struct {
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}

// NewMovementResponse mapea la entidad a su respuesta.
func NewMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		BalanceAfter: m.BalanceAfter,
		Reason:       m.Reason,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
}

// NewMovementResponses mapea una lista de movimientos.
func NewMovementResponses(list []*entity.StockMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, NewMovementResponse(m))
	}
	return out
}
