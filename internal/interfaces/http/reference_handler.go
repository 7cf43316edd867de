package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// ReferenceHandler categorías y estados.
type ReferenceHandler struct {
	uc  *usecase.ReferenceUseCase
	log *logger.Logger
}

// NewReferenceHandler construye el handler.
func NewReferenceHandler(uc *usecase.ReferenceUseCase, log *logger.Logger) *ReferenceHandler {
	return &ReferenceHandler{uc: uc, log: log}
}

// Categories godoc
// @Summary      Listar categorías
// @Tags         reference
// @Produce      json
// @Success      200  {array}   dto.CategoryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/categories [get]
func (h *ReferenceHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// States godoc
// @Summary      Listar estados
// @Tags         reference
// @Produce      json
// @Success      200  {array}   dto.StateResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/states [get]
func (h *ReferenceHandler) States(c *fiber.Ctx) error {
	out, err := h.uc.States(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
