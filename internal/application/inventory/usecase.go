package inventory

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/gestion-inventario/internal/domain"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

const defaultRecentLimit = 10

// StockLedgerUseCase expone el libro de stock: cada registro corre en su propia transacción.
// Las lecturas usan los repositorios fuera de transacción (read committed).
type StockLedgerUseCase struct {
	txRunner  TxRunner
	movements repository.StockMovementRepository
	products  repository.ProductRepository
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(
	txRunner TxRunner,
	movements repository.StockMovementRepository,
	products repository.ProductRepository,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{txRunner: txRunner, movements: movements, products: products}
}

// CurrentStock devuelve el stock actual del producto. NotFound si el producto no existe.
func (uc *StockLedgerUseCase) CurrentStock(ctx context.Context, productID string) (int, error) {
	if err := uc.requireProduct(ctx, productID); err != nil {
		return 0, err
	}
	return currentStock(ctx, uc.movements, productID)
}

func (uc *StockLedgerUseCase) requireProduct(ctx context.Context, productID string) error {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NewNotFound("producto", productID)
	}
	return nil
}

// RecordIn registra una entrada de stock.
func (uc *StockLedgerUseCase) RecordIn(ctx context.Context, productID string, quantity int, reason, actor string) (*entity.StockMovement, error) {
	return uc.record(ctx, func(l *Ledger) (*entity.StockMovement, error) {
		return l.In(ctx, productID, quantity, reason, actor)
	})
}

// RecordOut registra una salida de stock.
func (uc *StockLedgerUseCase) RecordOut(ctx context.Context, productID string, quantity int, reason, actor string) (*entity.StockMovement, error) {
	return uc.record(ctx, func(l *Ledger) (*entity.StockMovement, error) {
		return l.Out(ctx, productID, quantity, reason, actor)
	})
}

// RecordAdjustment fija el stock en targetQuantity.
func (uc *StockLedgerUseCase) RecordAdjustment(ctx context.Context, productID string, targetQuantity int, reason, actor string) (*entity.StockMovement, error) {
	return uc.record(ctx, func(l *Ledger) (*entity.StockMovement, error) {
		return l.Adjust(ctx, productID, targetQuantity, reason, actor)
	})
}

func (uc *StockLedgerUseCase) record(ctx context.Context, fn func(l *Ledger) (*entity.StockMovement, error)) (*entity.StockMovement, error) {
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		var err error
		mov, err = fn(NewLedger(tx))
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("product_id", mov.ProductID).
		Str("type", mov.Type).
		Int("quantity", mov.Quantity).
		Int("balance_after", mov.BalanceAfter).
		Msg("movimiento de stock registrado")
	return mov, nil
}

// ListByProduct lista los movimientos del producto, más recientes primero.
func (uc *StockLedgerUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	if err := uc.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	return uc.movements.ListByProduct(ctx, productID)
}

// ListRecent lista los últimos movimientos (limit <= 0 usa 10).
func (uc *StockLedgerUseCase) ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return uc.movements.ListRecent(ctx, limit)
}

// ProductStock producto con su stock actual.
type ProductStock struct {
	Product *entity.Product
	Stock   int
}

// AvailableProducts lista los productos con stock mayor a cero.
func (uc *StockLedgerUseCase) AvailableProducts(ctx context.Context) ([]ProductStock, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ProductStock, 0, len(products))
	for _, p := range products {
		stock, err := currentStock(ctx, uc.movements, p.ID)
		if err != nil {
			return nil, err
		}
		if stock > 0 {
			out = append(out, ProductStock{Product: p, Stock: stock})
		}
	}
	return out, nil
}
