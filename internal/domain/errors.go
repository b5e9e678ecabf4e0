package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidState      = errors.New("transición de estado no permitida")
	ErrDuplicate         = errors.New("recurso duplicado")
)

// InsufficientStockError detalla qué producto no alcanzó y con qué cantidades.
// errors.Is(err, ErrInsufficientStock) sigue funcionando.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("stock insuficiente para el producto %s. Disponible: %d, Solicitado: %d",
		name, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidStateError se produce cuando una acción del ciclo de vida no está permitida
// desde el estado actual de la orden.
type InvalidStateError struct {
	Kind    string
	OrderID string
	From    string
	Action  string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("orden %s %s: no se puede %s desde el estado %s", e.Kind, e.OrderID, e.Action, e.From)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// NotFoundError indica qué recurso no existe. Envuelve ErrNotFound.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound construye un NotFoundError.
func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}
