package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/gestion-inventario/internal/domain"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

// CustomerRepo implementa repository.CustomerRepository en memoria.
type CustomerRepo struct {
	v view
}

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.customers[c.ID]; ok {
			return domain.ErrDuplicate
		}
		if c.Document != "" {
			for _, other := range st.customers {
				if other.Document == c.Document {
					return domain.ErrDuplicate
				}
			}
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.v.read(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) GetByDocument(_ context.Context, document string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.v.read(func(st *state) error {
		for _, c := range st.customers {
			if c.Document == document {
				c := c
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	return r.filter("")
}

func (r *CustomerRepo) ListByName(_ context.Context, name string) ([]*entity.Customer, error) {
	return r.filter(name)
}

func (r *CustomerRepo) filter(name string) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.v.read(func(st *state) error {
		for _, c := range st.customers {
			c := c
			if name == "" || containsFold(c.Name, name) {
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.customers[c.ID]; !ok {
			return domain.NewNotFound("cliente", c.ID)
		}
		if c.Document != "" {
			for id, other := range st.customers {
				if id != c.ID && other.Document == c.Document {
					return domain.ErrDuplicate
				}
			}
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepo) Delete(_ context.Context, id string) (bool, error) {
	var deleted bool
	err := r.v.write(func(st *state) error {
		if _, ok := st.customers[id]; ok {
			if hasOrdersFor(st.sales, id) {
				return fmt.Errorf("%w: el cliente tiene órdenes asociadas", domain.ErrInvalidState)
			}
			delete(st.customers, id)
			deleted = true
		}
		return nil
	})
	return deleted, err
}

func (r *CustomerRepo) Count(_ context.Context) (int, error) {
	var n int
	err := r.v.read(func(st *state) error {
		n = len(st.customers)
		return nil
	})
	return n, err
}

// SupplierRepo implementa repository.SupplierRepository en memoria.
type SupplierRepo struct {
	v view
}

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.suppliers[s.ID]; ok {
			return domain.ErrDuplicate
		}
		if s.Document != "" {
			for _, other := range st.suppliers {
				if other.Document == s.Document {
					return domain.ErrDuplicate
				}
			}
		}
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.v.read(func(st *state) error {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) GetByDocument(_ context.Context, document string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.v.read(func(st *state) error {
		for _, s := range st.suppliers {
			if s.Document == document {
				s := s
				out = &s
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	return r.filter("")
}

func (r *SupplierRepo) ListByName(_ context.Context, name string) ([]*entity.Supplier, error) {
	return r.filter(name)
}

func (r *SupplierRepo) filter(name string) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.v.read(func(st *state) error {
		for _, s := range st.suppliers {
			s := s
			if name == "" || containsFold(s.Name, name) {
				out = append(out, &s)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *SupplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.suppliers[s.ID]; !ok {
			return domain.NewNotFound("proveedor", s.ID)
		}
		if s.Document != "" {
			for id, other := range st.suppliers {
				if id != s.ID && other.Document == s.Document {
					return domain.ErrDuplicate
				}
			}
		}
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepo) Delete(_ context.Context, id string) (bool, error) {
	var deleted bool
	err := r.v.write(func(st *state) error {
		if _, ok := st.suppliers[id]; ok {
			if hasOrdersFor(st.purchases, id) {
				return fmt.Errorf("%w: el proveedor tiene órdenes asociadas", domain.ErrInvalidState)
			}
			delete(st.suppliers, id)
			deleted = true
		}
		return nil
	})
	return deleted, err
}

func (r *SupplierRepo) Count(_ context.Context) (int, error) {
	var n int
	err := r.v.read(func(st *state) error {
		n = len(st.suppliers)
		return nil
	})
	return n, err
}
