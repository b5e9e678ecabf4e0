package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestion-inventario/internal/domain"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// orderTables nombres de tablas/columnas de un tipo de orden.
type orderTables struct {
	kind         string
	orders       string
	items        string
	party        string // tabla de la contraparte (customers | suppliers)
	partyColumn  string // FK en la cabecera (customer_id | supplier_id)
	resourceName string
}

var (
	saleTables = orderTables{
		kind: entity.OrderKindSale, orders: "sale_orders", items: "sale_order_items",
		party: "customers", partyColumn: "customer_id", resourceName: "venta",
	}
	purchaseTables = orderTables{
		kind: entity.OrderKindPurchase, orders: "purchase_orders", items: "purchase_order_items",
		party: "suppliers", partyColumn: "supplier_id", resourceName: "compra",
	}
)

// OrderRepo persiste ventas o compras con sus ítems (usable con pool o tx).
type OrderRepo struct {
	q Querier
	t orderTables
}

// NewSaleOrderRepository repositorio de ventas.
func NewSaleOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q, t: saleTables}
}

// NewPurchaseOrderRepository repositorio de compras.
func NewPurchaseOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q, t: purchaseTables}
}

// Create inserta cabecera e ítems. Con pool (fuera de tx) los ítems no serían atómicos:
// los casos de uso siempre lo llaman dentro de TxRunner.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	header := fmt.Sprintf(`
		INSERT INTO %s (id, %s, total_amount, order_date, status, notes, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, r.t.orders, r.t.partyColumn)
	_, err := r.q.Exec(ctx, header,
		o.ID, o.CounterpartyID, o.TotalAmount, o.OrderDate, o.Status, o.Notes, o.CreatedAt, o.UpdatedAt, o.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", r.t.orders, err)
	}
	item := fmt.Sprintf(`
		INSERT INTO %s (id, order_id, line_no, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, r.t.items)
	for i, it := range o.Items {
		if _, err := r.q.Exec(ctx, item, it.ID, o.ID, i+1, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal); err != nil {
			return fmt.Errorf("insert %s: %w", r.t.items, err)
		}
	}
	return nil
}

func (r *OrderRepo) selectHeader() string {
	return fmt.Sprintf(`
		SELECT o.id, o.%[2]s, p.name, o.total_amount, o.order_date, o.status, o.notes,
			o.created_at, o.updated_at, o.created_by
		FROM %[1]s o JOIN %[3]s p ON p.id = o.%[2]s`, r.t.orders, r.t.partyColumn, r.t.party)
}

func (r *OrderRepo) scanHeader(row pgx.Row) (*entity.Order, error) {
	o := entity.Order{Kind: r.t.kind}
	if err := row.Scan(&o.ID, &o.CounterpartyID, &o.CounterpartyName, &o.TotalAmount, &o.OrderDate,
		&o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt, &o.CreatedBy); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Order, error) {
	query := r.selectHeader() + ` WHERE o.id = $1`
	if forUpdate {
		query += ` FOR UPDATE OF o`
	}
	o, err := r.scanHeader(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", r.t.orders, err)
	}
	if err := r.loadItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// GetByID obtiene la orden con sus ítems.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene la orden bloqueando su cabecera hasta el fin de la tx.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, true)
}

// UpdateStatus cambia el estado de la orden.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET status = $2, updated_at = $3 WHERE id = $1`, r.t.orders)
	tag, err := r.q.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return domain.NewNotFound(r.t.resourceName, id)
		}
		return fmt.Errorf("update %s status: %w", r.t.orders, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound(r.t.resourceName, id)
	}
	return nil
}

// List lista órdenes según el filtro, por fecha descendente.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.CounterpartyID != "" {
		add("o."+r.t.partyColumn+" = $%d", f.CounterpartyID)
	}
	if len(f.Statuses) > 0 {
		add("o.status = ANY($%d)", f.Statuses)
	}
	if f.From != nil {
		add("o.order_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("o.order_date <= $%d", *f.To)
	}
	query := r.selectHeader()
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY o.order_date DESC, o.id"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	list := []*entity.Order{}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return list, nil
		}
		return nil, fmt.Errorf("list %s: %w", r.t.orders, err)
	}
	for rows.Next() {
		o, err := r.scanHeader(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan %s: %w", r.t.orders, err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		if isInvalidTextRepresentation(err) {
			return []*entity.Order{}, nil
		}
		return nil, fmt.Errorf("list %s: %w", r.t.orders, err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems carga los ítems de varias órdenes en una sola consulta, en el orden de sus líneas.
func (r *OrderRepo) loadItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	query := fmt.Sprintf(`
		SELECT i.order_id, i.id, i.product_id, p.name, i.quantity, i.unit_price, i.subtotal
		FROM %s i JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1)
		ORDER BY i.order_id, i.line_no`, r.t.items)
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list %s: %w", r.t.items, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			orderID string
			it      entity.OrderItem
		)
		if err := rows.Scan(&orderID, &it.ID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return fmt.Errorf("scan %s: %w", r.t.items, err)
		}
		o := byID[orderID]
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}
