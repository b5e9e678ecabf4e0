package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description" validate:"max=1000"`
	Price         decimal.Decimal `json:"price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	ProfitMargin  decimal.Decimal `json:"profit_margin"`
	Category      string          `json:"category" validate:"max=100"`
}

// UpdateProductRequest entrada para actualizar un producto (el stock no se edita aquí).
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description" validate:"omitempty,max=1000"`
	Price         *decimal.Decimal `json:"price"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	ProfitMargin  *decimal.Decimal `json:"profit_margin"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	ProfitMargin  decimal.Decimal `json:"profit_margin"`
	Category      string          `json:"category"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AvailableProductResponse producto con su stock actual (> 0).
type AvailableProductResponse struct {
	ProductResponse
	Stock int `json:"stock"`
}
