package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// Update persiste todos los campos; devuelve ErrNotFound si no afectó filas.
	Update(ctx context.Context, product *entity.Product) error
	// Delete devuelve ErrNotFound si no afectó filas.
	Delete(ctx context.Context, id int64) error
	ListWithSupplier(ctx context.Context) ([]*entity.ProductListing, error)
}
