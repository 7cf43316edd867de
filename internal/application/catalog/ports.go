package catalog

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Agrupa verificación, escritura del producto y entrada del histórico en una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		auditRepo repository.AuditRepository,
	) error) error
}

// ImageStore almacenamiento de las imágenes de productos, referenciadas solo por nombre.
type ImageStore interface {
	// Save persiste el archivo con un nombre nuevo y lo devuelve.
	Save(ctx context.Context, upload dto.ImageUpload) (string, error)
	Delete(ctx context.Context, name string) error
}
