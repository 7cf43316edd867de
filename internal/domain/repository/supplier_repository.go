package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByName(ctx context.Context, name string) (*entity.Supplier, error)
	List(ctx context.Context) ([]*entity.Supplier, error)
}
