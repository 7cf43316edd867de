package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo. Image es el nombre del archivo en el directorio de uploads
// (vacío si no tiene); la fila es dueña exclusiva de ese archivo.
type Product struct {
	ID         int64
	Name       string
	Quantity   int
	Price      decimal.Decimal
	Image      string
	SupplierID int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductListing fila del listado producto + proveedor.
type ProductListing struct {
	ID           int64
	Name         string
	Quantity     int
	Price        decimal.Decimal
	Image        string
	SupplierName string
	SupplierID   int64
}
