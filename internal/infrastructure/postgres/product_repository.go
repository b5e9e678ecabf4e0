package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestion-inventario/internal/domain"
	"github.com/jhoicas/gestion-inventario/internal/domain/entity"
	"github.com/jhoicas/gestion-inventario/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, price, purchase_price, profit_margin, category, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.PurchasePrice, p.ProfitMargin, p.Category,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.PurchasePrice, &p.ProfitMargin,
		&p.Category, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) getOne(ctx context.Context, query, id, op string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id, "get product")
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id, "get product for update")
}

func (r *ProductRepo) list(ctx context.Context, where string, args ...any) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ` + where + ` ORDER BY name, id`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// List lista todos los productos por nombre.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, "")
}

// ListByName busca por nombre (contiene, sin distinguir mayúsculas).
func (r *ProductRepo) ListByName(ctx context.Context, name string) ([]*entity.Product, error) {
	return r.list(ctx, `WHERE name ILIKE '%' || $1 || '%'`, name)
}

// ListByCategory lista los productos de una categoría.
func (r *ProductRepo) ListByCategory(ctx context.Context, category string) ([]*entity.Product, error) {
	return r.list(ctx, `WHERE lower(category) = lower($1)`, category)
}

// Update actualiza los datos de catálogo del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, price = $4, purchase_price = $5,
			profit_margin = $6, category = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.PurchasePrice, p.ProfitMargin, p.Category, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("producto", p.ID)
	}
	return nil
}

// UpdatePricing actualiza solo precio de venta y costo.
func (r *ProductRepo) UpdatePricing(ctx context.Context, p *entity.Product) error {
	query := `UPDATE products SET price = $2, purchase_price = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Price, p.PurchasePrice, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product pricing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("producto", p.ID)
	}
	return nil
}

// Delete elimina un producto por ID. Falla si tiene movimientos u órdenes (FK).
func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("%w: el producto tiene movimientos u órdenes", domain.ErrInvalidState)
		}
		if isInvalidTextRepresentation(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Count cuenta los productos.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
