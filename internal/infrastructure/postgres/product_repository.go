package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, quantity, price, COALESCE(image, ''), supplier_id, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto; la imagen vacía se guarda como NULL.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (name, quantity, price, image, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.Name, p.Quantity, p.Price, nullString(p.Image), p.SupplierID, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return mapProductWriteError("insert product", err)
	}
	return nil
}

// GetByName obtiene un producto por nombre.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE name = $1`, name)
}

// GetForUpdate obtiene un producto bloqueando la fila (solo tiene efecto dentro de una tx).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// Update actualiza todos los campos editables.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, quantity = $3, price = $4, image = $5, supplier_id = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Quantity, p.Price, nullString(p.Image), p.SupplierID, p.UpdatedAt,
	)
	if err != nil {
		return mapProductWriteError("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListWithSupplier lista productos unidos a su proveedor.
func (r *ProductRepo) ListWithSupplier(ctx context.Context) ([]*entity.ProductListing, error) {
	query := `
		SELECT p.id, p.name, p.quantity, p.price, COALESCE(p.image, ''), s.name, s.id
		FROM products p
		JOIN suppliers s ON p.supplier_id = s.id
		ORDER BY p.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductListing
	for rows.Next() {
		var p entity.ProductListing
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.Image, &p.SupplierName, &p.SupplierID); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.Name, &p.Quantity, &p.Price, &p.Image, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func mapProductWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicateProduct
	case isForeignKeyViolation(err):
		return domain.ErrSupplierNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
