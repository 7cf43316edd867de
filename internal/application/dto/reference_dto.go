package dto

// CategoryResponse categoría de productos.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StateResponse estado (región) de proveedores.
type StateResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// AuditEntryResponse entrada del histórico.
type AuditEntryResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}
