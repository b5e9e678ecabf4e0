package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
	"github.com/jhoicas/gestion-inventario/internal/domain"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo  repository.SupplierRepository
	phone PhoneNormalizer
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, phone PhoneNormalizer) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, phone: phone}
}

// Create registra un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.PartyRequest) (*dto.PartyResponse, error) {
	in, err := normalizeParty(in, uc.phone)
	if err != nil {
		return nil, err
	}
	if in.Document != "" {
		existing, err := uc.repo.GetByDocument(ctx, in.Document)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: ya existe un proveedor con documento %s", domain.ErrDuplicate, in.Document)
		}
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Document:  in.Document,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return supplierResponse(s), nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.PartyResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return supplierResponse(s), nil
}

func (uc *SupplierUseCase) get(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NewNotFound("proveedor", id)
	}
	return s, nil
}

// Update reemplaza los datos del proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.PartyRequest) (*dto.PartyResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	in, err = normalizeParty(in, uc.phone)
	if err != nil {
		return nil, err
	}
	s.Name, s.Email, s.Phone, s.Address, s.Document = in.Name, in.Email, in.Phone, in.Address, in.Document
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return supplierResponse(s), nil
}

// List lista proveedores, opcionalmente filtrando por nombre.
func (uc *SupplierUseCase) List(ctx context.Context, name string) ([]dto.PartyResponse, error) {
	var (
		list []*entity.Supplier
		err  error
	)
	if name != "" {
		list, err = uc.repo.ListByName(ctx, name)
	} else {
		list, err = uc.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartyResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *supplierResponse(s))
	}
	return out, nil
}

// Delete elimina un proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewNotFound("proveedor", id)
	}
	return nil
}

func supplierResponse(s *entity.Supplier) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		Document:  s.Document,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
