// Package memory implementa los puertos de repositorio en memoria. Se usa con STORAGE=memory
// (desarrollo/demos) y como backend de las pruebas de los casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

// state es todo lo persistido. Una transacción trabaja sobre una copia.
type state struct {
	products  map[string]entity.Product
	customers map[string]entity.Customer
	suppliers map[string]entity.Supplier
	movements []entity.StockMovement // orden de inserción (Seq creciente)
	seq       int64
	sales     map[string]*entity.Order
	purchases map[string]*entity.Order
}

func newState() *state {
	return &state{
		products:  make(map[string]entity.Product),
		customers: make(map[string]entity.Customer),
		suppliers: make(map[string]entity.Supplier),
		sales:     make(map[string]*entity.Order),
		purchases: make(map[string]*entity.Order),
	}
}

func (s *state) clone() *state {
	c := &state{
		products:  make(map[string]entity.Product, len(s.products)),
		customers: make(map[string]entity.Customer, len(s.customers)),
		suppliers: make(map[string]entity.Supplier, len(s.suppliers)),
		movements: append(make([]entity.StockMovement, 0, len(s.movements)+8), s.movements...),
		seq:       s.seq,
		sales:     make(map[string]*entity.Order, len(s.sales)),
		purchases: make(map[string]*entity.Order, len(s.purchases)),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v.Clone()
	}
	for k, v := range s.purchases {
		c.purchases[k] = v.Clone()
	}
	return c
}

// productInUse replica las FK hacia products: movimientos e ítems de órdenes.
func (s *state) productInUse(id string) bool {
	for _, m := range s.movements {
		if m.ProductID == id {
			return true
		}
	}
	for _, orders := range []map[string]*entity.Order{s.sales, s.purchases} {
		for _, o := range orders {
			for _, it := range o.Items {
				if it.ProductID == id {
					return true
				}
			}
		}
	}
	return false
}

func hasOrdersFor(orders map[string]*entity.Order, counterpartyID string) bool {
	for _, o := range orders {
		if o.CounterpartyID == counterpartyID {
			return true
		}
	}
	return false
}

// Store guarda el estado y serializa a los escritores: writeMu se toma durante toda
// la transacción; mu protege el puntero al estado confirmado frente a los lectores.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	st      *state
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// view abstrae dónde leen y escriben los repositorios: el estado confirmado o la copia de una tx.
type view interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

// storeView opera sobre el estado confirmado; cada escritura es atómica por sí sola.
type storeView struct{ s *Store }

func (v storeView) read(fn func(st *state) error) error {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return fn(v.s.st)
}

func (v storeView) write(fn func(st *state) error) error {
	v.s.writeMu.Lock()
	defer v.s.writeMu.Unlock()
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.s.st)
}

// txView opera sobre la copia privada de una transacción; no necesita bloqueos.
type txView struct{ st *state }

func (v txView) read(fn func(st *state) error) error  { return fn(v.st) }
func (v txView) write(fn func(st *state) error) error { return fn(v.st) }

// Repositories devuelve los repositorios sobre el estado confirmado (fuera de transacción).
func (s *Store) Repositories() repository.TxRepositories {
	return reposFor(storeView{s: s})
}

func reposFor(v view) repository.TxRepositories {
	return repository.TxRepositories{
		Movements: &StockMovementRepo{v: v},
		Products:  &ProductRepo{v: v},
		Customers: &CustomerRepo{v: v},
		Suppliers: &SupplierRepo{v: v},
		Sales:     &OrderRepo{v: v, kind: entity.OrderKindSale},
		Purchases: &OrderRepo{v: v, kind: entity.OrderKindPurchase},
	}
}

// TxRunner implementa inventory.TxRunner sobre Store.
type TxRunner struct {
	store *Store
}

// NewTxRunner crea el runner de transacciones en memoria.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn sobre una copia del estado; si fn no falla la copia reemplaza al estado
// confirmado, si falla se descarta.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.TxRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	if err := fn(reposFor(txView{st: work})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}
