package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
	"github.com/jhoicas/gestion-inventario/internal/domain"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	domaininv "github.com/jhoicas/gestion-inventario/internal/domain/inventory"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. Los montos se guardan con 2 decimales.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := checkMoney(in.Price, in.PurchasePrice, in.ProfitMargin); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		Price:         domaininv.RoundMoney(in.Price),
		PurchasePrice: domaininv.RoundMoney(in.PurchasePrice),
		ProfitMargin:  domaininv.RoundMoney(in.ProfitMargin),
		Category:      in.Category,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("producto", id)
	}
	return product, nil
}

// Update actualiza un producto. Solo se modifican los campos presentes.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		product.Price = domaininv.RoundMoney(*in.Price)
	}
	if in.PurchasePrice != nil {
		product.PurchasePrice = domaininv.RoundMoney(*in.PurchasePrice)
	}
	if in.ProfitMargin != nil {
		product.ProfitMargin = domaininv.RoundMoney(*in.ProfitMargin)
	}
	if err := checkMoney(product.Price, product.PurchasePrice, product.ProfitMargin); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos; name y category son filtros opcionales (name tiene prioridad).
func (uc *ProductUseCase) List(ctx context.Context, name, category string) ([]dto.ProductResponse, error) {
	var (
		list []*entity.Product
		err  error
	)
	switch {
	case name != "":
		list, err = uc.repo.ListByName(ctx, name)
	case category != "":
		list, err = uc.repo.ListByCategory(ctx, category)
	default:
		list, err = uc.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewNotFound("producto", id)
	}
	return nil
}

// Count total de productos del catálogo.
func (uc *ProductUseCase) Count(ctx context.Context) (int, error) {
	return uc.repo.Count(ctx)
}

func checkMoney(price, purchasePrice, margin decimal.Decimal) error {
	if price.IsNegative() || purchasePrice.IsNegative() {
		return fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	if margin.IsNegative() {
		return fmt.Errorf("%w: el margen no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// ToProductResponse mapea la entidad a su respuesta.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return *toProductResponse(p)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		PurchasePrice: p.PurchasePrice,
		ProfitMargin:  p.ProfitMargin,
		Category:      p.Category,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
