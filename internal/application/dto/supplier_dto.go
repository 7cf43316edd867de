package dto

// RegisterSupplierRequest entrada para registrar un proveedor.
type RegisterSupplierRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	StateID    int64  `json:"state_id" validate:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"omitempty,email"`
	CategoryID int64  `json:"category_id" validate:"required"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	StateID    int64  `json:"state_id"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	CategoryID int64  `json:"category_id"`
}
