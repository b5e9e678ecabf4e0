package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/gestion-inventario/internal/domain"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

// ProductRepo implementa repository.ProductRepository en memoria.
type ProductRepo struct {
	v view
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate no necesita bloqueo propio: las transacciones en memoria ya están serializadas.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	return r.filter(func(*entity.Product) bool { return true })
}

func (r *ProductRepo) ListByName(_ context.Context, name string) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool { return containsFold(p.Name, name) })
}

func (r *ProductRepo) ListByCategory(_ context.Context, category string) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool { return strings.EqualFold(p.Category, category) })
}

func (r *ProductRepo) filter(match func(*entity.Product) bool) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.read(func(st *state) error {
		for _, p := range st.products {
			p := p
			if match(&p) {
				out = append(out, &p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return domain.NewNotFound("producto", p.ID)
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) UpdatePricing(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.NewNotFound("producto", p.ID)
		}
		cur.Price = p.Price
		cur.PurchasePrice = p.PurchasePrice
		cur.UpdatedAt = p.UpdatedAt
		st.products[p.ID] = cur
		return nil
	})
}

func (r *ProductRepo) Delete(_ context.Context, id string) (bool, error) {
	var deleted bool
	err := r.v.write(func(st *state) error {
		if _, ok := st.products[id]; ok {
			if st.productInUse(id) {
				return fmt.Errorf("%w: el producto tiene movimientos u órdenes", domain.ErrInvalidState)
			}
			delete(st.products, id)
			deleted = true
		}
		return nil
	})
	return deleted, err
}

func (r *ProductRepo) Count(_ context.Context) (int, error) {
	var n int
	err := r.v.read(func(st *state) error {
		n = len(st.products)
		return nil
	})
	return n, err
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
