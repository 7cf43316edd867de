package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo lectura de categorías y estados.
type ReferenceRepo struct {
	q Querier
}

// NewReferenceRepository construye el adaptador.
func NewReferenceRepository(q Querier) *ReferenceRepo {
	return &ReferenceRepo{q: q}
}

// ListCategories lista las categorías.
func (r *ReferenceRepo) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ListStates lista los estados.
func (r *ReferenceRepo) ListStates(ctx context.Context) ([]*entity.State, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, abbreviation FROM states ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	defer rows.Close()
	var list []*entity.State
	for rows.Next() {
		var s entity.State
		if err := rows.Scan(&s.ID, &s.Name, &s.Abbreviation); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpsertCategory inserta la categoría si no existe (usado por el seed).
func (r *ReferenceRepo) UpsertCategory(ctx context.Context, name string) error {
	_, err := r.q.Exec(ctx, `INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}
	return nil
}

// UpsertState inserta o renombra un estado por su sigla (usado por el seed).
func (r *ReferenceRepo) UpsertState(ctx context.Context, name, abbreviation string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO states (name, abbreviation) VALUES ($1, $2)
		ON CONFLICT (abbreviation) DO UPDATE SET name = EXCLUDED.name`, name, abbreviation)
	if err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}
	return nil
}
