package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, seq, product_id, type, quantity, balance_after, reason, created_at, created_by`

// StockMovementRepo libro de stock sobre PostgreSQL (usable con pool o tx). Solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Append inserta el movimiento; seq lo asigna la secuencia de la tabla.
func (r *StockMovementRepo) Append(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, balance_after, reason, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.BalanceAfter, m.Reason, m.CreatedAt, m.CreatedBy,
	).Scan(&m.Seq)
	if err != nil {
		return fmt.Errorf("append stock movement: %w", err)
	}
	return nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	if err := row.Scan(&m.ID, &m.Seq, &m.ProductID, &m.Type, &m.Quantity, &m.BalanceAfter,
		&m.Reason, &m.CreatedAt, &m.CreatedBy); err != nil {
		return nil, err
	}
	return &m, nil
}

// Latest devuelve el último movimiento del producto o nil.
func (r *StockMovementRepo) Latest(ctx context.Context, productID string) (*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE product_id = $1
		ORDER BY created_at DESC, seq DESC LIMIT 1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest stock movement: %w", err)
	}
	return m, nil
}

// ListByProduct lista los movimientos del producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE product_id = $1
		ORDER BY created_at DESC, seq DESC`
	return r.list(ctx, query, productID)
}

// ListRecent lista los últimos movimientos de todos los productos.
func (r *StockMovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		ORDER BY created_at DESC, seq DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	list := []*entity.StockMovement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
