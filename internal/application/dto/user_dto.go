package dto

import "time"

// RegisterRequest entrada para registro de usuario (password en texto, se hashea en el use case).
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginUser datos públicos del usuario autenticado (nunca el hash).
type LoginUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResponse salida del login con el token de sesión.
type LoginResponse struct {
	Message string    `json:"message"`
	User    LoginUser `json:"user"`
	Token   string    `json:"token"`
}

// UserResponse salida de un usuario en listados (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}
