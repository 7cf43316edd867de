package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo histórico append-only sobre la tabla audit_log.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Append inserta una entrada.
func (r *AuditRepo) Append(ctx context.Context, description string) (*entity.AuditEntry, error) {
	e := entity.AuditEntry{Description: description}
	err := r.q.QueryRow(ctx,
		`INSERT INTO audit_log (description) VALUES ($1) RETURNING id, created_at`, description,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert audit entry: %w", err)
	}
	return &e, nil
}

// List lista el histórico en orden de inserción.
func (r *AuditRepo) List(ctx context.Context) ([]*entity.AuditEntry, error) {
	rows, err := r.q.Query(ctx, `SELECT id, description, created_at FROM audit_log ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		if err := rows.Scan(&e.ID, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
