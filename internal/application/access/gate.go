// Package access resuelve el nivel de permiso del llamador contra el almacén de credenciales.
package access

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// Policy decide si un nivel de permiso habilita la operación.
type Policy func(domain.PermissionLevel) bool

// Políticas usadas por las escrituras.
var (
	CanWrite  Policy = domain.PermissionLevel.CanWrite
	CanDelete Policy = domain.PermissionLevel.CanDelete
)

// Gate consulta el nivel actual del usuario en cada llamada (no confía en el nivel del token).
type Gate struct {
	users repository.UserRepository
}

// NewGate construye el gate sobre el repositorio de usuarios.
func NewGate(users repository.UserRepository) *Gate {
	return &Gate{users: users}
}

// Require devuelve el usuario si su nivel cumple la política; ErrForbidden si no existe o no cumple.
func (g *Gate) Require(ctx context.Context, email string, allowed Policy) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.ErrForbidden
	}
	user, err := g.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("resolver permiso: %w", err)
	}
	if user == nil || !allowed(user.Level) {
		return nil, domain.ErrForbidden
	}
	return user, nil
}
