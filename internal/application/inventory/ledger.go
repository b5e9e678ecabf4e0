package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/gestion-inventario/internal/domain"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

// Ledger aplica las reglas del libro de stock sobre repositorios de una transacción.
// Lo usan StockLedgerUseCase y los ciclos de vida de ventas y compras, de modo que
// todos los asientos de una operación se confirman o se descartan juntos.
type Ledger struct {
	movements repository.StockMovementRepository
	products  repository.ProductRepository
	now       func() time.Time
}

// NewLedger construye el libro sobre los repositorios de la transacción actual.
func NewLedger(tx repository.TxRepositories) *Ledger {
	return &Ledger{movements: tx.Movements, products: tx.Products, now: time.Now}
}

// CurrentStock devuelve el saldo del último movimiento del producto, o 0 si no tiene.
func (l *Ledger) CurrentStock(ctx context.Context, productID string) (int, error) {
	return currentStock(ctx, l.movements, productID)
}

// Lock bloquea el producto (SELECT FOR UPDATE) y lo devuelve; ErrNotFound si no existe.
// Tomar el bloqueo antes de leer el saldo evita que dos escritores vean el mismo stock.
func (l *Ledger) Lock(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := l.products.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("producto", productID)
	}
	return product, nil
}

// LockAll bloquea varios productos en orden ascendente de id para que dos transacciones
// con los mismos productos no se bloqueen mutuamente.
func (l *Ledger) LockAll(ctx context.Context, productIDs []string) (map[string]*entity.Product, error) {
	ids := append([]string(nil), productIDs...)
	sort.Strings(ids)
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if _, ok := out[id]; ok {
			continue
		}
		p, err := l.Lock(ctx, id)
		if err != nil {
			return nil, err
		}
		out[id] = p
	}
	return out, nil
}

// In registra una entrada. quantity debe ser positiva.
func (l *Ledger) In(ctx context.Context, productID string, quantity int, reason, actor string) (*entity.StockMovement, error) {
	if _, err := l.Lock(ctx, productID); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidQuantity)
	}
	current, err := l.CurrentStock(ctx, productID)
	if err != nil {
		return nil, err
	}
	return l.append(ctx, productID, entity.MovementTypeIN, quantity, current+quantity, reason, actor)
}

// Out registra una salida. Falla con *domain.InsufficientStockError si quantity supera el saldo;
// en ese caso no se agrega ningún asiento.
func (l *Ledger) Out(ctx context.Context, productID string, quantity int, reason, actor string) (*entity.StockMovement, error) {
	product, err := l.Lock(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidQuantity)
	}
	current, err := l.CurrentStock(ctx, productID)
	if err != nil {
		return nil, err
	}
	if current < quantity {
		return nil, &domain.InsufficientStockError{
			ProductID:   productID,
			ProductName: product.Name,
			Available:   current,
			Requested:   quantity,
		}
	}
	return l.append(ctx, productID, entity.MovementTypeOUT, quantity, current-quantity, reason, actor)
}

// Adjust lleva el saldo exactamente a target. El asiento guarda |target - actual| como cantidad
// y target como saldo resultante (no un delta con signo).
func (l *Ledger) Adjust(ctx context.Context, productID string, target int, reason, actor string) (*entity.StockMovement, error) {
	if _, err := l.Lock(ctx, productID); err != nil {
		return nil, err
	}
	if target < 0 {
		return nil, fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidQuantity)
	}
	current, err := l.CurrentStock(ctx, productID)
	if err != nil {
		return nil, err
	}
	if reason == "" {
		reason = fmt.Sprintf("Ajuste de stock de %d a %d", current, target)
	}
	diff := target - current
	if diff < 0 {
		diff = -diff
	}
	return l.append(ctx, productID, entity.MovementTypeADJUSTMENT, diff, target, reason, actor)
}

func (l *Ledger) append(ctx context.Context, productID, typ string, quantity, balance int, reason, actor string) (*entity.StockMovement, error) {
	if actor == "" {
		actor = entity.DefaultActor
	}
	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		ProductID:    productID,
		Type:         typ,
		Quantity:     quantity,
		BalanceAfter: balance,
		Reason:       reason,
		CreatedAt:    l.now(),
		CreatedBy:    actor,
	}
	if err := l.movements.Append(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

func currentStock(ctx context.Context, movements repository.StockMovementRepository, productID string) (int, error) {
	last, err := movements.Latest(ctx, productID)
	if err != nil {
		return 0, err
	}
	if last == nil {
		return 0, nil
	}
	return last.BalanceAfter, nil
}
