package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
	"github.com/jhoicas/gestion-inventario/internal/application/usecase"
	"github.com/jhoicas/gestion-inventario/internal/domain"
	"github.com/jhoicas/gestion-inventario/internal/infrastructure/memory"
	"github.com/jhoicas/gestion-inventario/pkg/phone"
)

func strPtr(s string) *string { return &s }

func TestProductUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewStore().Repositories().Products)

	created, err := uc.Create(ctx, dto.CreateProductRequest{
		Name: "Cuaderno", Price: decimal.RequireFromString("12.345"), Category: "papelería",
	})
	require.NoError(t, err)
	assert.Equal(t, "12.35", created.Price.StringFixed(2), "se redondea a 2 decimales")

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Malo", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: strPtr("Cuaderno rayado")})
	require.NoError(t, err)
	assert.Equal(t, "Cuaderno rayado", updated.Name)
	assert.Equal(t, "papelería", updated.Category)

	byCategory, err := uc.List(ctx, "", "PAPELERÍA")
	require.NoError(t, err)
	assert.Len(t, byCategory, 1)
	byName, err := uc.List(ctx, "rayado", "")
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	n, err := uc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerUseCase_NormalizaTelefonoYDocumentoUnico(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCustomerUseCase(memory.NewStore().Repositories().Customers, phone.NewNormalizer("CO"))

	c, err := uc.Create(ctx, dto.PartyRequest{Name: " Maria ", Phone: "300 123 4567", Email: "Maria@Mail.com", Document: "900123"})
	require.NoError(t, err)
	assert.Equal(t, "Maria", c.Name)
	assert.Equal(t, "+573001234567", c.Phone)
	assert.Equal(t, "maria@mail.com", c.Email)

	_, err = uc.Create(ctx, dto.PartyRequest{Name: "Otra", Document: "900123"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.PartyRequest{Name: "Sin tel", Phone: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, "mar")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSupplierUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewSupplierUseCase(memory.NewStore().Repositories().Suppliers, phone.NewNormalizer("CO"))

	s, err := uc.Create(ctx, dto.PartyRequest{Name: "Distribuidora Sur"})
	require.NoError(t, err)

	s, err = uc.Update(ctx, s.ID, dto.PartyRequest{Name: "Distribuidora Norte", Address: "Calle 1"})
	require.NoError(t, err)
	assert.Equal(t, "Calle 1", s.Address)

	_, err = uc.Update(ctx, "nope", dto.PartyRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, uc.Delete(ctx, s.ID))
}
