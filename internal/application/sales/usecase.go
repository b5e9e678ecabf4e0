// Package sales implementa el ciclo de vida de las órdenes de venta.
package sales

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

// SaleOrderUseCase crea ventas y las mueve por su ciclo de vida. Confirmar descuenta stock,
// cancelar una venta confirmada lo devuelve; cada operación es una única transacción.
type SaleOrderUseCase struct {
	txRunner inventory.TxRunner
	sales    repository.OrderRepository
	now      func() time.Time
}

// NewSaleOrderUseCase construye el caso de uso. sales se usa para las lecturas fuera de tx.
func NewSaleOrderUseCase(txRunner inventory.TxRunner, sales repository.OrderRepository) *SaleOrderUseCase {
	return &SaleOrderUseCase{txRunner: txRunner, sales: sales, now: time.Now}
}

// Create registra una venta PENDING. Valida cliente, productos, cantidades y stock disponible,
// pero no toca el libro de stock.
func (uc *SaleOrderUseCase) Create(ctx context.Context, customerID string, items []dto.OrderItemRequest, notes, actor string) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: la venta debe tener al menos un ítem", domain.ErrInvalidInput)
	}
	if actor == "" {
		actor = entity.DefaultActor
	}
	var created *entity.Order
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		customer, err := tx.Customers.GetByID(ctx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.NewNotFound("cliente", customerID)
		}
		ledger := inventory.NewLedger(tx)
		now := uc.now()
		o := &entity.Order{
			ID:               uuid.New().String(),
			Kind:             entity.OrderKindSale,
			CounterpartyID:   customer.ID,
			CounterpartyName: customer.Name,
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
			available, err := ledger.CurrentStock(ctx, product.ID)
			if err != nil {
				return err
			}
			if available < in.Quantity {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   available,
					Requested:   in.Quantity,
				}
			}
			unitPrice := product.Price
			if in.UnitPrice != nil {
				if in.UnitPrice.IsNegative() {
					return fmt.Errorf("%w: precio unitario negativo", domain.ErrInvalidInput)
				}
				unitPrice = *in.UnitPrice
			}
			unitPrice = domaininv.RoundMoney(unitPrice)
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
		if err := tx.Sales.Create(ctx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("sale_id", created.ID).Str("customer_id", customerID).
		Str("total", created.TotalAmount.StringFixed(domaininv.MoneyScale)).Msg("venta creada")
	return created, nil
}

// Confirm PENDING → CONFIRMED. Registra una salida por línea; si alguna no alcanza,
// no se aplica ninguna.
func (uc *SaleOrderUseCase) Confirm(ctx context.Context, id string) (*entity.Order, error) {
	return uc.transition(ctx, id, order.ActionConfirm)
}

// Deliver CONFIRMED → RECEIVED. No afecta el stock.
func (uc *SaleOrderUseCase) Deliver(ctx context.Context, id string) (*entity.Order, error) {
	return uc.transition(ctx, id, order.ActionDeliver)
}

// Cancel PENDING|CONFIRMED → CANCELLED. Si estaba confirmada devuelve el stock.
func (uc *SaleOrderUseCase) Cancel(ctx context.Context, id string) (*entity.Order, error) {
	return uc.transition(ctx, id, order.ActionCancel)
}

func (uc *SaleOrderUseCase) transition(ctx context.Context, id string, action order.Action) (*entity.Order, error) {
	var (
		updated *entity.Order
		tr      order.Transition
	)
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		o, err := tx.Sales.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.NewNotFound("venta", id)
		}
		tr, err = order.Next(o, action)
		if err != nil {
			return err
		}
		if tr.Effect != order.EffectNone {
			ledger := inventory.NewLedger(tx)
			if _, err := ledger.LockAll(ctx, o.ProductIDs()); err != nil {
				return err
			}
			for _, it := range o.Items {
				switch tr.Effect {
				case order.EffectDebit:
					reason := fmt.Sprintf("Venta #%s - Cliente: %s", o.ID, o.CounterpartyName)
					_, err = ledger.Out(ctx, it.ProductID, it.Quantity, reason, o.CreatedBy)
				case order.EffectCredit:
					reason := fmt.Sprintf("Cancelación de la venta #%s", o.ID)
					_, err = ledger.In(ctx, it.ProductID, it.Quantity, reason, o.CreatedBy)
				}
				if err != nil {
					return err
				}
			}
		}
		now := uc.now()
		if err := tx.Sales.UpdateStatus(ctx, o.ID, tr.To, now); err != nil {
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
	log.Info().Str("sale_id", id).Str("action", string(action)).
		Str("from", tr.From).Str("to", tr.To).Msg("transición de venta")
	return updated, nil
}

// GetByID devuelve la venta o ErrNotFound.
func (uc *SaleOrderUseCase) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NewNotFound("venta", id)
	}
	return o, nil
}

// List lista todas las ventas, más recientes primero.
func (uc *SaleOrderUseCase) List(ctx context.Context) ([]*entity.Order, error) {
	return uc.sales.List(ctx, repository.OrderFilter{})
}

// ListByCustomer lista las ventas de un cliente.
func (uc *SaleOrderUseCase) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Order, error) {
	return uc.sales.List(ctx, repository.OrderFilter{CounterpartyID: customerID})
}

// ListByStatus lista las ventas en un estado.
func (uc *SaleOrderUseCase) ListByStatus(ctx context.Context, status string) ([]*entity.Order, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, status)
	}
	return uc.sales.List(ctx, repository.OrderFilter{Statuses: []string{status}})
}

// ListRecent lista las últimas ventas (limit <= 0 usa 10).
func (uc *SaleOrderUseCase) ListRecent(ctx context.Context, limit int) ([]*entity.Order, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return uc.sales.List(ctx, repository.OrderFilter{Limit: limit})
}
