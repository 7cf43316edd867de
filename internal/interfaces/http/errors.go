package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Orden relevante: los duplicados concretos antes que el genérico.
var errorMappings = []errorMapping{
	{domain.ErrDuplicateUser, fiber.StatusBadRequest, "USER_EXISTS", "Erro: Usuario já cadastrado!"},
	{domain.ErrDuplicateSupplier, fiber.StatusBadRequest, "SUPPLIER_EXISTS", "Erro: Fornecedor já cadastrado!"},
	{domain.ErrDuplicateProduct, fiber.StatusBadRequest, "PRODUCT_EXISTS", "Erro: Produto já cadastrado!"},
	{domain.ErrDuplicate, fiber.StatusBadRequest, "DUPLICATE", "Erro: registro já cadastrado!"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "Dados inválidos."},
	{domain.ErrSupplierNotFound, fiber.StatusBadRequest, "SUPPLIER_NOT_FOUND", "Fornecedor não encontrado."},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Credenciais inválidas!"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "MISSING_TOKEN", "Token de acesso requerido."},
	{domain.ErrQuantityTooLow, fiber.StatusUnauthorized, "QUANTITY_TOO_LOW", "Os produtos não podem conter menos de cinco itens no estoque!"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "Usuário sem permissão"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "Produto não encontrado!"},
}

// writeError traduce errores de dominio a HTTP. Lo no mapeado se registra y responde 500 sin detalle.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}

	code, message := "INTERNAL", "Erro no servidor!"
	if errors.Is(err, domain.ErrImageCleanup) {
		code, message = "IMAGE_CLEANUP", "Erro ao excluir a imagem!"
	}
	log.Error().Err(err).
		Str("request_id", requestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: message})
}
