package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ReferenceRepository lectura de tablas de referencia (categorías y estados).
type ReferenceRepository interface {
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	ListStates(ctx context.Context) ([]*entity.State, error)
}
