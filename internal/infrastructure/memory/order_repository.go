package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/gestion-inventario/internal/domain"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

// OrderRepo implementa repository.OrderRepository para un tipo de orden.
type OrderRepo struct {
	v    view
	kind string
}

var _ repository.OrderRepository = (*OrderRepo)(nil)

func (r *OrderRepo) table(st *state) map[string]*entity.Order {
	if r.kind == entity.OrderKindPurchase {
		return st.purchases
	}
	return st.sales
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.v.write(func(st *state) error {
		t := r.table(st)
		if _, ok := t[o.ID]; ok {
			return domain.ErrDuplicate
		}
		t[o.ID] = o.Clone()
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.v.read(func(st *state) error {
		out = r.table(st)[id].Clone()
		return nil
	})
	return out, err
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	return r.v.write(func(st *state) error {
		o, ok := r.table(st)[id]
		if !ok {
			return domain.NewNotFound("orden", id)
		}
		o.Status = status
		o.UpdatedAt = updatedAt
		return nil
	})
}

func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	out := []*entity.Order{}
	err := r.v.read(func(st *state) error {
		for _, o := range r.table(st) {
			if matches(o, f) {
				out = append(out, o.Clone())
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OrderDate.Equal(out[j].OrderDate) {
			return out[i].OrderDate.After(out[j].OrderDate)
		}
		return out[i].ID < out[j].ID
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, err
}

func matches(o *entity.Order, f repository.OrderFilter) bool {
	if f.CounterpartyID != "" && o.CounterpartyID != f.CounterpartyID {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if o.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.From != nil && o.OrderDate.Before(*f.From) {
		return false
	}
	if f.To != nil && o.OrderDate.After(*f.To) {
		return false
	}
	return true
}
