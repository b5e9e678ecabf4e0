package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gestion-inventario/internal/application/dto"
	"github.com/jhoicas/gestion-inventario/internal/domain"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
	"github.com/jhoicas/gestion-inventario/pkg/phone"
)

// PhoneNormalizer convierte teléfonos a E.164.
type PhoneNormalizer interface {
	Normalize(raw string) (string, error)
}

// CustomerUseCase casos de uso CRUD para clientes.
type CustomerUseCase struct {
	repo  repository.CustomerRepository
	phone PhoneNormalizer
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, phone PhoneNormalizer) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, phone: phone}
}

// Create registra un cliente. El documento, si viene, debe ser único.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.PartyRequest) (*dto.PartyResponse, error) {
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
			return nil, fmt.Errorf("%w: ya existe un cliente con documento %s", domain.ErrDuplicate, in.Document)
		}
	}
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Document:  in.Document,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return customerResponse(c), nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.PartyResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return customerResponse(c), nil
}

func (uc *CustomerUseCase) get(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFound("cliente", id)
	}
	return c, nil
}

// Update reemplaza los datos del cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.PartyRequest) (*dto.PartyResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	in, err = normalizeParty(in, uc.phone)
	if err != nil {
		return nil, err
	}
	c.Name, c.Email, c.Phone, c.Address, c.Document = in.Name, in.Email, in.Phone, in.Address, in.Document
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return customerResponse(c), nil
}

// List lista clientes, opcionalmente filtrando por nombre.
func (uc *CustomerUseCase) List(ctx context.Context, name string) ([]dto.PartyResponse, error) {
	var (
		list []*entity.Customer
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
	for _, c := range list {
		out = append(out, *customerResponse(c))
	}
	return out, nil
}

// Delete elimina un cliente.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewNotFound("cliente", id)
	}
	return nil
}

func customerResponse(c *entity.Customer) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Document:  c.Document,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// normalizeParty recorta espacios y lleva el teléfono a E.164.
func normalizeParty(in dto.PartyRequest, normalizer PhoneNormalizer) (dto.PartyRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Address = strings.TrimSpace(in.Address)
	in.Document = strings.TrimSpace(in.Document)
	if in.Name == "" {
		return in, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if normalizer != nil {
		p, err := normalizer.Normalize(in.Phone)
		if err != nil {
			if errors.Is(err, phone.ErrInvalid) {
				return in, fmt.Errorf("%w: teléfono %q inválido", domain.ErrInvalidInput, in.Phone)
			}
			return in, err
		}
		in.Phone = p
	}
	return in, nil
}
