package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// AuditHandler histórico de operaciones sobre productos.
type AuditHandler struct {
	uc  *usecase.AuditUseCase
	log *logger.Logger
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *usecase.AuditUseCase, log *logger.Logger) *AuditHandler {
	return &AuditHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar histórico
// @Tags         logs
// @Produce      json
// @Success      200  {array}   dto.AuditEntryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Exportar histórico en PDF
// @Tags         logs
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/logs/pdf [get]
func (h *AuditHandler) PDF(c *fiber.Ctx) error {
	doc, filename, err := h.uc.ExportPDF(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(doc)
}
