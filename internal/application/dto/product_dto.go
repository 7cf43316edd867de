package dto

import (
	"io"

	"github.com/shopspring/decimal"
)

// ImageUpload archivo de imagen recibido en la petición.
type ImageUpload struct {
	Filename string // nombre original; solo se usa la extensión
	Content  io.Reader
}

// CreateProductRequest entrada para crear un producto (multipart: name, quantity, price, supplier_id, image).
type CreateProductRequest struct {
	Name       string
	Quantity   int
	Price      decimal.Decimal
	SupplierID int64
	Image      *ImageUpload
}

// UpdateProductRequest edición parcial: nil = campo omitido (se conserva el valor actual).
type UpdateProductRequest struct {
	Name       *string
	Quantity   *int
	Price      *decimal.Decimal
	SupplierID *int64
	Image      *ImageUpload
}

// ProductResponse fila del listado de productos con su proveedor.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Image        *string         `json:"image"`
	SupplierName string          `json:"supplier_name"`
	SupplierID   int64           `json:"supplier_id"`
}
