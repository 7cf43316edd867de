package entity

import (
	"time"

	"github.com/jhoicas/estoque-api/internal/domain"
)

// User representa un usuario del sistema. Email es el identificador de login (único).
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca se expone fuera del servicio
	Level        domain.PermissionLevel
	CreatedAt    time.Time
}
