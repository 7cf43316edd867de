package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// AuditRepository histórico append-only: no expone update ni delete.
type AuditRepository interface {
	Append(ctx context.Context, description string) (*entity.AuditEntry, error)
	List(ctx context.Context) ([]*entity.AuditEntry, error)
}
