package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/access"
	"github.com/jhoicas/estoque-api/internal/application/catalog"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// ProductHandler maneja las peticiones HTTP de productos (escrituras protegidas).
type ProductHandler struct {
	uc  *catalog.ProductUseCase
	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        name         formData  string  true   "Nombre"
// @Param        quantity     formData  int     true   "Cantidad"
// @Param        price        formData  string  true   "Precio"
// @Param        supplier_id  formData  int     true   "ID del proveedor"
// @Param        image        formData  file    false  "Imagen"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	caller, ok := GetCaller(c)
	if !ok {
		return writeError(c, h.log, domain.ErrUnauthorized)
	}
	if err := h.uc.Authorize(c.UserContext(), caller, access.CanWrite); err != nil {
		return writeError(c, h.log, err)
	}
	in := dto.CreateProductRequest{Name: strings.TrimSpace(c.FormValue("name"))}

	var err error
	if in.Quantity, err = parseQuantity(strings.TrimSpace(c.FormValue("quantity"))); err != nil {
		return badRequest(c, "quantity inválida")
	}
	if in.Price, err = decimal.NewFromString(strings.TrimSpace(c.FormValue("price"))); err != nil {
		return badRequest(c, "price inválido")
	}
	if in.SupplierID, err = strconv.ParseInt(strings.TrimSpace(c.FormValue("supplier_id")), 10, 64); err != nil {
		return badRequest(c, "supplier_id inválido")
	}
	if in.Name == "" {
		return badRequest(c, "name é obrigatório")
	}

	upload, closeFn, err := formImage(c)
	if err != nil {
		return badRequest(c, "imagem inválida")
	}
	defer closeFn()
	in.Image = upload

	if err := h.uc.Create(c.UserContext(), caller, in); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Cadastro realizado com sucesso!"})
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Edición parcial: los campos omitidos o vacíos conservan su valor. La imagen solo cambia si se envía una nueva.
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           path      int     true   "ID del producto"
// @Param        name         formData  string  false  "Nombre"
// @Param        quantity     formData  int     false  "Cantidad (mínimo 5)"
// @Param        price        formData  string  false  "Precio"
// @Param        supplier_id  formData  int     false  "ID del proveedor"
// @Param        image        formData  file    false  "Imagen nueva"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	caller, ok := GetCaller(c)
	if !ok {
		return writeError(c, h.log, domain.ErrUnauthorized)
	}
	if err := h.uc.Authorize(c.UserContext(), caller, access.CanWrite); err != nil {
		return writeError(c, h.log, err)
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "id inválido")
	}

	var in dto.UpdateProductRequest
	if v, ok := formField(c, "name"); ok {
		in.Name = &v
	}
	if v, ok := formField(c, "quantity"); ok {
		n, err := parseQuantity(v)
		if err != nil {
			return badRequest(c, "quantity inválida")
		}
		in.Quantity = &n
	}
	if v, ok := formField(c, "price"); ok {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return badRequest(c, "price inválido")
		}
		in.Price = &d
	}
	if v, ok := formField(c, "supplier_id"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return badRequest(c, "supplier_id inválido")
		}
		in.SupplierID = &n
	}

	upload, closeFn, err := formImage(c)
	if err != nil {
		return badRequest(c, "imagem inválida")
	}
	defer closeFn()
	in.Image = upload

	if err := h.uc.Update(c.UserContext(), caller, id, in); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Produto atualizado com sucesso"})
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	caller, ok := GetCaller(c)
	if !ok {
		return writeError(c, h.log, domain.ErrUnauthorized)
	}
	if err := h.uc.Authorize(c.UserContext(), caller, access.CanDelete); err != nil {
		return writeError(c, h.log, err)
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), caller, id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Produto excluído com sucesso!"})
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {array}   dto.ProductResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// parseQuantity acepta enteros que caben en la columna INTEGER.
func parseQuantity(v string) (int, error) {
	n, err := strconv.ParseInt(v, 10, 32)
	return int(n), err
}

// formField devuelve el valor de un campo de formulario y si vino con contenido.
// Un campo vacío se trata como omitido.
func formField(c *fiber.Ctx, key string) (string, bool) {
	var raw string
	if form, err := c.MultipartForm(); err == nil {
		vals := form.Value[key]
		if len(vals) == 0 {
			return "", false
		}
		raw = vals[0]
	} else {
		args := c.Request().PostArgs()
		if !args.Has(key) {
			return "", false
		}
		raw = string(args.Peek(key))
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

// formImage abre el archivo "image" si se envió. closeFn siempre es invocable.
func formImage(c *fiber.Ctx) (*dto.ImageUpload, func(), error) {
	noop := func() {}
	fh, err := c.FormFile("image")
	if err != nil || fh == nil || fh.Size == 0 {
		return nil, noop, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	return &dto.ImageUpload{Filename: fh.Filename, Content: f}, func() { _ = f.Close() }, nil
}
