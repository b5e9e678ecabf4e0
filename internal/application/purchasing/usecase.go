// Package purchasing implementa el ciclo de vida de las órdenes de compra.
package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
	"github.com/jhoicas/gestion-inventario/internal/application/inventory"
	"github.com/jhoicas/gestion-inventario/internal/domain"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	domaininv "github.com/jhoicas/gestion-inventario/internal/domain/inventory"
	"github.com/jhoicas/gestion-inventario/internal/domain/order"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

const defaultRecentLimit = 10

// PurchaseOrderUseCase gestiona compras. Solo la recepción afecta al stock y a los precios.
type PurchaseOrderUseCase struct {
	txRunner  inventory.TxRunner
	purchases repository.OrderRepository
	now       func() time.Time
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(txRunner inventory.TxRunner, purchases repository.OrderRepository) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{txRunner: txRunner, purchases: purchases, now: time.Now}
}

// Create registra una compra PENDING. El precio unitario es obligatorio; no se valida stock.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, supplierID string, items []dto.OrderItemRequest, notes, actor string) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: la compra debe tener al menos un ítem", domain.ErrInvalidInput)
	}
	if actor == "" {
		actor = entity.DefaultActor
	}
	var created *entity.Order
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		supplier, err := tx.Suppliers.GetByID(ctx, supplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.NewNotFound("proveedor", supplierID)
		}
		now := uc.now()
		o := &entity.Order{
			ID:               uuid.New().String(),
			Kind:             entity.OrderKindPurchase,
			CounterpartyID:   supplier.ID,
			CounterpartyName: supplier.Name,
			Items:            make([]entity.OrderItem, 0, len(items)),
			TotalAmount:      decimal.Zero,
			OrderDate:        now,
			Status:           entity.OrderStatusPending,
			Notes:            notes,
			CreatedAt:        now,
			UpdatedAt:        now,
			CreatedBy:        actor,
		}
		for _, in := range items {
			product, err := tx.Products.GetByID(ctx, in.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.NewNotFound("producto", in.ProductID)
			}
			if in.Quantity <= 0 {
				return fmt.Errorf("%w: la cantidad de %s debe ser positiva", domain.ErrInvalidQuantity, product.Name)
			}
			if in.UnitPrice == nil {
				return fmt.Errorf("%w: precio unitario obligatorio para %s", domain.ErrInvalidInput, product.Name)
			}
			if in.UnitPrice.IsNegative() {
				return fmt.Errorf("%w: precio unitario negativo para %s", domain.ErrInvalidInput, product.Name)
			}
			unitPrice := domaininv.RoundMoney(*in.UnitPrice)
			subtotal := domaininv.LineSubtotal(in.Quantity, unitPrice)
			o.Items = append(o.Items, entity.OrderItem{
				ID:          uuid.New().String(),
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    in.Quantity,
				UnitPrice:   unitPrice,
				Subtotal:    subtotal,
			})
			o.TotalAmount = o.TotalAmount.Add(subtotal)
		}
		if err := tx.Purchases.Create(ctx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("purchase_id", created.ID).Str("supplier_id", supplierID).
		Str("total", created.TotalAmount.StringFixed(domaininv.MoneyScale)).Msg("compra creada")
	return created, nil
}

// Confirm PENDING → CONFIRMED. Solo cambia el estado.
func (uc *PurchaseOrderUseCase) Confirm(ctx context.Context, id string) (*entity.Order, error) {
	return uc.transition(ctx, id, order.ActionConfirm)
}

// Receive CONFIRMED → RECEIVED. Por cada línea actualiza costo y precio de venta del producto
// y registra la entrada de stock. Todo o nada.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, id string) (*entity.Order, error) {
	return uc.transition(ctx, id, order.ActionReceive)
}

// Cancel PENDING|CONFIRMED → CANCELLED. Una compra recibida no se puede cancelar.
func (uc *PurchaseOrderUseCase) Cancel(ctx context.Context, id string) (*entity.Order, error) {
	return uc.transition(ctx, id, order.ActionCancel)
}

func (uc *PurchaseOrderUseCase) transition(ctx context.Context, id string, action order.Action) (*entity.Order, error) {
	var (
		updated *entity.Order
		tr      order.Transition
	)
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		o, err := tx.Purchases.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.NewNotFound("compra", id)
		}
		tr, err = order.Next(o, action)
		if err != nil {
			return err
		}
		now := uc.now()
		if tr.Effect == order.EffectCredit {
			if err := uc.receiveLines(ctx, tx, o, now); err != nil {
				return err
			}
		}
		if err := tx.Purchases.UpdateStatus(ctx, o.ID, tr.To, now); err != nil {
			return err
		}
		o.Status = tr.To
		o.UpdatedAt = now
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("purchase_id", id).Str("action", string(action)).
		Str("from", tr.From).Str("to", tr.To).Msg("transición de compra")
	return updated, nil
}

// receiveLines aplica la recepción: PurchasePrice ← UnitPrice y, si el producto tiene margen,
// Price ← UnitPrice × (1 + margen/100) redondeado a 2 decimales.
func (uc *PurchaseOrderUseCase) receiveLines(ctx context.Context, tx repository.TxRepositories, o *entity.Order, now time.Time) error {
	ledger := inventory.NewLedger(tx)
	locked, err := ledger.LockAll(ctx, o.ProductIDs())
	if err != nil {
		return err
	}
	reason := fmt.Sprintf("Compra #%s - Proveedor: %s", o.ID, o.CounterpartyName)
	for _, it := range o.Items {
		product := locked[it.ProductID]
		product.PurchasePrice = it.UnitPrice
		if product.ProfitMargin.GreaterThan(decimal.Zero) {
			product.Price = domaininv.SalePriceFromMargin(it.UnitPrice, product.ProfitMargin)
		}
		product.UpdatedAt = now
		if err := tx.Products.UpdatePricing(ctx, product); err != nil {
			return err
		}
		if _, err := ledger.In(ctx, it.ProductID, it.Quantity, reason, o.CreatedBy); err != nil {
			return err
		}
	}
	return nil
}

// GetByID devuelve la compra o ErrNotFound.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NewNotFound("compra", id)
	}
	return o, nil
}

// List lista todas las compras, más recientes primero.
func (uc *PurchaseOrderUseCase) List(ctx context.Context) ([]*entity.Order, error) {
	return uc.purchases.List(ctx, repository.OrderFilter{})
}

// ListBySupplier lista las compras de un proveedor.
func (uc *PurchaseOrderUseCase) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Order, error) {
	return uc.purchases.List(ctx, repository.OrderFilter{CounterpartyID: supplierID})
}

// ListByStatus lista las compras en un estado.
func (uc *PurchaseOrderUseCase) ListByStatus(ctx context.Context, status string) ([]*entity.Order, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, status)
	}
	return uc.purchases.List(ctx, repository.OrderFilter{Statuses: []string{status}})
}

// ListRecent lista las últimas compras (limit <= 0 usa 10).
func (uc *PurchaseOrderUseCase) ListRecent(ctx context.Context, limit int) ([]*entity.Order, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return uc.purchases.List(ctx, repository.OrderFilter{Limit: limit})
}
