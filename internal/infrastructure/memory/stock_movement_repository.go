package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

// StockMovementRepo implementa repository.StockMovementRepository en memoria (solo agregar).
type StockMovementRepo struct {
	v view
}

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

func (r *StockMovementRepo) Append(_ context.Context, m *entity.StockMovement) error {
	return r.v.write(func(st *state) error {
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		st.seq++
		m.Seq = st.seq
		st.movements = append(st.movements, *m)
		return nil
	})
}

// newer ordena por CreatedAt y luego por Seq.
func newer(a, b *entity.StockMovement) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.Seq > b.Seq
}

func (r *StockMovementRepo) Latest(_ context.Context, productID string) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	err := r.v.read(func(st *state) error {
		for i := range st.movements {
			m := st.movements[i]
			if m.ProductID != productID {
				continue
			}
			if out == nil || newer(&m, out) {
				out = &m
			}
		}
		return nil
	})
	return out, err
}

func (r *StockMovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	return r.collect(func(m *entity.StockMovement) bool { return m.ProductID == productID }, 0)
}

func (r *StockMovementRepo) ListRecent(_ context.Context, limit int) ([]*entity.StockMovement, error) {
	return r.collect(func(*entity.StockMovement) bool { return true }, limit)
}

func (r *StockMovementRepo) collect(match func(*entity.StockMovement) bool, limit int) ([]*entity.StockMovement, error) {
	out := []*entity.StockMovement{}
	err := r.v.read(func(st *state) error {
		for i := range st.movements {
			m := st.movements[i]
			if match(&m) {
				out = append(out, &m)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return newer(out[i], out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}
