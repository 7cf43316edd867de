package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/pkg/jwt"
)

// LocalCaller key de c.Locals con la identidad verificada del token.
const LocalCaller = "caller"

// AuthMiddleware valida el Bearer Token JWT y deja la identidad del llamador en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Token de acesso requerido."})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Token de acesso requerido."})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Token inválido ou expirado."})
		}
		c.Locals(LocalCaller, dto.Caller{UserID: id.UserID, Email: id.Email, Name: id.Name})
		return c.Next()
	}
}

// GetCaller devuelve la identidad del contexto (después del middleware de auth).
func GetCaller(c *fiber.Ctx) (dto.Caller, bool) {
	caller, ok := c.Locals(LocalCaller).(dto.Caller)
	return caller, ok
}
