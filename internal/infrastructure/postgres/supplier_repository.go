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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor. Categoría o estado inexistente → ErrInvalidInput.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (name, state_id, phone, email, category_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, s.Name, s.StateID, s.Phone, s.Email, s.CategoryID, s.CreatedAt).Scan(&s.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicateSupplier
		case isForeignKeyViolation(err):
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByName obtiene un proveedor por nombre.
func (r *SupplierRepo) GetByName(ctx context.Context, name string) (*entity.Supplier, error) {
	query := `
		SELECT id, name, state_id, phone, email, category_id, created_at
		FROM suppliers WHERE name = $1`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, name).Scan(&s.ID, &s.Name, &s.StateID, &s.Phone, &s.Email, &s.CategoryID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier by name: %w", err)
	}
	return &s, nil
}

// List lista todos los proveedores.
func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, state_id, phone, email, category_id, created_at
		FROM suppliers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.StateID, &s.Phone, &s.Email, &s.CategoryID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
