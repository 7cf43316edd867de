package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse envelope de éxito de las operaciones de escritura.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Caller identidad verificada (extraída del JWT) de quien ejecuta una operación.
type Caller struct {
	UserID int64
	Email  string
	Name   string
}
