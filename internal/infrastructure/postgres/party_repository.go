package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestion-inventario/internal/domain"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

// party son las columnas comunes de customers y suppliers.
type party struct {
	ID, Name, Email, Phone, Address, Document string
	CreatedAt, UpdatedAt                      time.Time
}

// partyTable implementa el CRUD compartido sobre customers o suppliers.
type partyTable struct {
	q        Querier
	table    string
	resource string
}

const partyColumns = `id, name, email, phone, address, document, created_at, updated_at`

func (t partyTable) create(ctx context.Context, p party) error {
	query := `INSERT INTO ` + t.table + ` (` + partyColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := t.q.Exec(ctx, query, p.ID, p.Name, p.Email, p.Phone, p.Address, nullIfEmpty(p.Document), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", t.table, err)
	}
	return nil
}

func scanParty(row pgx.Row) (*party, error) {
	var (
		p   party
		doc *string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Address, &doc, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if doc != nil {
		p.Document = *doc
	}
	return &p, nil
}

func (t partyTable) getBy(ctx context.Context, column, value string) (*party, error) {
	query := `SELECT ` + partyColumns + ` FROM ` + t.table + ` WHERE ` + column + ` = $1`
	p, err := scanParty(t.q.QueryRow(ctx, query, value))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", t.table, err)
	}
	return p, nil
}

func (t partyTable) list(ctx context.Context, name string) ([]*party, error) {
	query := `SELECT ` + partyColumns + ` FROM ` + t.table
	var args []any
	if name != "" {
		query += ` WHERE name ILIKE '%' || $1 || '%'`
		args = append(args, name)
	}
	query += ` ORDER BY name`
	rows, err := t.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()
	var list []*party
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.table, err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (t partyTable) update(ctx context.Context, p party) error {
	query := `UPDATE ` + t.table + ` SET name = $2, email = $3, phone = $4, address = $5, document = $6, updated_at = $7 WHERE id = $1`
	tag, err := t.q.Exec(ctx, query, p.ID, p.Name, p.Email, p.Phone, p.Address, nullIfEmpty(p.Document), p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update %s: %w", t.table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound(t.resource, p.ID)
	}
	return nil
}

func (t partyTable) delete(ctx context.Context, id string) (bool, error) {
	tag, err := t.q.Exec(ctx, `DELETE FROM `+t.table+` WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("%w: el %s tiene órdenes asociadas", domain.ErrInvalidState, t.resource)
		}
		if isInvalidTextRepresentation(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete %s: %w", t.table, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (t partyTable) count(ctx context.Context) (int, error) {
	var n int
	if err := t.q.QueryRow(ctx, `SELECT count(*) FROM `+t.table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", t.table, err)
	}
	return n, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ── Clientes ──────────────────────────────────────────────────────────────────

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	t partyTable
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{t: partyTable{q: q, table: "customers", resource: "cliente"}}
}

func customerFrom(p *party) *entity.Customer {
	if p == nil {
		return nil
	}
	c := entity.Customer(*p)
	return &c
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	return r.t.create(ctx, party(*c))
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	p, err := r.t.getBy(ctx, "id", id)
	return customerFrom(p), err
}

func (r *CustomerRepo) GetByDocument(ctx context.Context, document string) (*entity.Customer, error) {
	p, err := r.t.getBy(ctx, "document", document)
	return customerFrom(p), err
}

func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	return r.ListByName(ctx, "")
}

func (r *CustomerRepo) ListByName(ctx context.Context, name string) ([]*entity.Customer, error) {
	list, err := r.t.list(ctx, name)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Customer, 0, len(list))
	for _, p := range list {
		out = append(out, customerFrom(p))
	}
	return out, nil
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	return r.t.update(ctx, party(*c))
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.t.delete(ctx, id)
}

func (r *CustomerRepo) Count(ctx context.Context) (int, error) {
	return r.t.count(ctx)
}

// ── Proveedores ───────────────────────────────────────────────────────────────

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository (usable con pool o tx).
type SupplierRepo struct {
	t partyTable
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{t: partyTable{q: q, table: "suppliers", resource: "proveedor"}}
}

func supplierFrom(p *party) *entity.Supplier {
	if p == nil {
		return nil
	}
	s := entity.Supplier(*p)
	return &s
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	return r.t.create(ctx, party(*s))
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	p, err := r.t.getBy(ctx, "id", id)
	return supplierFrom(p), err
}

func (r *SupplierRepo) GetByDocument(ctx context.Context, document string) (*entity.Supplier, error) {
	p, err := r.t.getBy(ctx, "document", document)
	return supplierFrom(p), err
}

func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	return r.ListByName(ctx, "")
}

func (r *SupplierRepo) ListByName(ctx context.Context, name string) ([]*entity.Supplier, error) {
	list, err := r.t.list(ctx, name)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Supplier, 0, len(list))
	for _, p := range list {
		out = append(out, supplierFrom(p))
	}
	return out, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	return r.t.update(ctx, party(*s))
}

func (r *SupplierRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.t.delete(ctx, id)
}

func (r *SupplierRepo) Count(ctx context.Context) (int, error) {
	return r.t.count(ctx)
}
