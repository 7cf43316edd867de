// Package catalog implementa el camino de escritura de productos: permiso, reglas de negocio,
// transacción con histórico y ciclo de vida del archivo de imagen.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/access"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// MinStockQuantity cantidad mínima permitida al editar un producto.
const MinStockQuantity = 5

// maxPrice límite exclusivo de NUMERIC(12,2).
var maxPrice = decimal.New(1, 10)

// auditTimeLayout formato de fecha/hora de los textos del histórico (dd/mm/aaaa hh:mm:ss).
const auditTimeLayout = "02/01/2006 15:04:05"

// ProductUseCase crea, edita, elimina y lista productos.
type ProductUseCase struct {
	tx          TxRunner
	gate        *access.Gate
	productRepo repository.ProductRepository
	images      ImageStore
	log         *logger.Logger
	loc         *time.Location
	now         func() time.Time
}

// NewProductUseCase construye el caso de uso. loc define la zona horaria de los textos del histórico.
func NewProductUseCase(
	tx TxRunner,
	gate *access.Gate,
	productRepo repository.ProductRepository,
	images ImageStore,
	log *logger.Logger,
	loc *time.Location,
) *ProductUseCase {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{
		tx:          tx,
		gate:        gate,
		productRepo: productRepo,
		images:      images,
		log:         log.Component("catalog"),
		loc:         loc,
		now:         time.Now,
	}
}

// Authorize verifica el permiso del llamador sin tocar el catálogo.
// Los adaptadores lo invocan antes de interpretar la entrada.
func (uc *ProductUseCase) Authorize(ctx context.Context, caller dto.Caller, allowed access.Policy) error {
	_, err := uc.gate.Require(ctx, caller.Email, allowed)
	return err
}

// Create registra un producto nuevo. Requiere nivel > 1.
//
// Errores: ErrForbidden, ErrInvalidInput, ErrDuplicateProduct, ErrSupplierNotFound.
func (uc *ProductUseCase) Create(ctx context.Context, caller dto.Caller, in dto.CreateProductRequest) error {
	if _, err := uc.gate.Require(ctx, caller.Email, access.CanWrite); err != nil {
		return err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Quantity < 0 || !validPrice(in.Price) || in.SupplierID <= 0 {
		return domain.ErrInvalidInput
	}

	image, err := uc.saveImage(ctx, in.Image)
	if err != nil {
		return err
	}

	err = uc.tx.Run(ctx, func(productRepo repository.ProductRepository, auditRepo repository.AuditRepository) error {
		existing, err := productRepo.GetByName(ctx, in.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateProduct
		}
		now := uc.now()
		product := &entity.Product{
			Name:       in.Name,
			Quantity:   in.Quantity,
			Price:      in.Price,
			Image:      image,
			SupplierID: in.SupplierID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		_, err = auditRepo.Append(ctx, uc.describe(caller, "cadastrou um novo produto", product.Name))
		return err
	})
	if err != nil {
		uc.discardImage(ctx, image)
		return err
	}
	return nil
}

// Update edita un producto. Los campos nil se conservan; la imagen solo cambia si se envía una nueva.
// Requiere nivel > 1.
//
// Errores: ErrForbidden, ErrQuantityTooLow, ErrInvalidInput, ErrNotFound, ErrDuplicateProduct, ErrSupplierNotFound.
func (uc *ProductUseCase) Update(ctx context.Context, caller dto.Caller, id int64, in dto.UpdateProductRequest) error {
	if _, err := uc.gate.Require(ctx, caller.Email, access.CanWrite); err != nil {
		return err
	}
	if in.Quantity != nil && *in.Quantity < MinStockQuantity {
		return domain.ErrQuantityTooLow
	}
	if id <= 0 {
		return domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.ErrInvalidInput
		}
		in.Name = &name
	}
	if (in.Price != nil && !validPrice(*in.Price)) || (in.SupplierID != nil && *in.SupplierID <= 0) {
		return domain.ErrInvalidInput
	}

	image, err := uc.saveImage(ctx, in.Image)
	if err != nil {
		return err
	}

	var previousImage string
	err = uc.tx.Run(ctx, func(productRepo repository.ProductRepository, auditRepo repository.AuditRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil && *in.Name != product.Name {
			other, err := productRepo.GetByName(ctx, *in.Name)
			if err != nil {
				return err
			}
			if other != nil && other.ID != product.ID {
				return domain.ErrDuplicateProduct
			}
			product.Name = *in.Name
		}
		if in.Quantity != nil {
			product.Quantity = *in.Quantity
		}
		if in.Price != nil {
			product.Price = *in.Price
		}
		if in.SupplierID != nil {
			product.SupplierID = *in.SupplierID
		}
		if image != "" {
			previousImage = product.Image
			product.Image = image
		}
		product.UpdatedAt = uc.now()
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		_, err = auditRepo.Append(ctx, uc.describe(caller, "alterou o produto", product.Name))
		return err
	})
	if err != nil {
		uc.discardImage(ctx, image)
		return err
	}

	// La fila ya apunta a la imagen nueva: un fallo al borrar la anterior solo se registra.
	if previousImage != "" {
		if err := uc.images.Delete(ctx, previousImage); err != nil {
			uc.log.Warn().Err(err).Int64("product_id", id).Str("image", previousImage).
				Msg("no se pudo eliminar la imagen anterior")
		}
	}
	return nil
}

// Delete elimina un producto y luego su imagen. Requiere nivel 3.
// Si la fila se eliminó pero el archivo no, devuelve un error que envuelve ErrImageCleanup.
//
// Errores: ErrForbidden, ErrNotFound, ErrImageCleanup.
func (uc *ProductUseCase) Delete(ctx context.Context, caller dto.Caller, id int64) error {
	if _, err := uc.gate.Require(ctx, caller.Email, access.CanDelete); err != nil {
		return err
	}
	if id <= 0 {
		return domain.ErrNotFound
	}

	var image string
	err := uc.tx.Run(ctx, func(productRepo repository.ProductRepository, auditRepo repository.AuditRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		image = product.Image
		if err := productRepo.Delete(ctx, id); err != nil {
			return err
		}
		_, err = auditRepo.Append(ctx, uc.describe(caller, "excluiu o produto", product.Name))
		return err
	})
	if err != nil {
		return err
	}

	if image == "" {
		return nil
	}
	// Cualquier fallo, incluido un archivo ya inexistente, se reporta aunque la fila ya no exista.
	if err := uc.images.Delete(ctx, image); err != nil {
		uc.log.Error().Err(err).Int64("product_id", id).Str("image", image).
			Msg("producto eliminado pero la imagen no")
		return fmt.Errorf("%w: %v", domain.ErrImageCleanup, err)
	}
	return nil
}

// List devuelve todos los productos con el nombre de su proveedor.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.ListWithSupplier(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		var image *string
		if p.Image != "" {
			img := p.Image
			image = &img
		}
		out = append(out, dto.ProductResponse{
			ID:           p.ID,
			Name:         p.Name,
			Quantity:     p.Quantity,
			Price:        p.Price,
			Image:        image,
			SupplierName: p.SupplierName,
			SupplierID:   p.SupplierID,
		})
	}
	return out, nil
}

func validPrice(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThan(maxPrice)
}

func (uc *ProductUseCase) describe(caller dto.Caller, action, productName string) string {
	return fmt.Sprintf("Usuário '%s' %s (%s) às %s",
		caller.Email, action, productName, uc.now().In(uc.loc).Format(auditTimeLayout))
}

func (uc *ProductUseCase) saveImage(ctx context.Context, upload *dto.ImageUpload) (string, error) {
	if upload == nil || upload.Content == nil {
		return "", nil
	}
	name, err := uc.images.Save(ctx, *upload)
	if err != nil {
		return "", fmt.Errorf("guardar imagen: %w", err)
	}
	return name, nil
}

// discardImage borra una imagen recién subida cuya escritura en BD no se confirmó.
func (uc *ProductUseCase) discardImage(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if err := uc.images.Delete(ctx, name); err != nil {
		uc.log.Warn().Err(err).Str("image", name).Msg("no se pudo descartar la imagen subida")
	}
}
