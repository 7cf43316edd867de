package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/access"
	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/catalog"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/pdf"
	"github.com/jhoicas/estoque-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/estoque-api/internal/interfaces/http"
	"github.com/jhoicas/estoque-api/pkg/logger"
	pkgjwt "github.com/jhoicas/estoque-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testJWTSecret = "test-secret-key-for-unit-tests"

type testEnv struct {
	app    *fiber.App
	store  *memory.Store
	fs     afero.Fs
	authUC *auth.AuthUseCase
}

// buildTestApp arma la API completa sobre el backend en memoria y un Fs en memoria.
func buildTestApp(t *testing.T, supplierRequireAuth bool) *testEnv {
	t.Helper()
	store := memory.NewStore()
	store.SeedCategories("Bebidas")
	store.SeedStates(entity.State{Name: "São Paulo", Abbreviation: "SP"})

	users := memory.NewUserRepository(store)
	gate := access.NewGate(users)
	fs := afero.NewMemMapFs()
	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: "test"})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: authUC,
		ProductUC: catalog.NewProductUseCase(
			memory.NewTxRunner(store), gate, memory.NewProductRepository(store),
			storage.NewImageStore(fs), logger.Nop(), time.UTC,
		),
		SupplierUC:  usecase.NewSupplierUseCase(memory.NewSupplierRepository(store), gate, supplierRequireAuth),
		ReferenceUC: usecase.NewReferenceUseCase(memory.NewReferenceRepository(store)),
		AuditUC:     usecase.NewAuditUseCase(memory.NewAuditRepository(store), pdf.NewAuditReportGenerator(), "Estoque"),
		JWTSecret:   testJWTSecret,
		Log:         logger.Nop(),
	})
	return &testEnv{app: app, store: store, fs: fs, authUC: authUC}
}

// userToken crea un usuario con el nivel indicado y devuelve el header Authorization.
func (e *testEnv) userToken(t *testing.T, email string, level domain.PermissionLevel) string {
	t.Helper()
	ctx := context.Background()
	_, err := e.authUC.CreateUser(ctx, dto.RegisterRequest{Name: "Teste", Email: email, Password: "segredo"}, level)
	require.NoError(t, err)
	out, err := e.authUC.Login(ctx, dto.LoginRequest{Email: email, Password: "segredo"})
	require.NoError(t, err)
	return "Bearer " + out.Token
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func jsonRequest(method, path string, body any) *http.Request {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// multipartRequest arma un formulario con campos y, opcionalmente, un archivo "image".
func multipartRequest(t *testing.T, method, path, authHeader string, fields map[string]string, image []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		fw, err := w.CreateFormFile("image", "foto.png")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

func decodeError(t *testing.T, body []byte) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func (e *testEnv) listProducts(t *testing.T) []dto.ProductResponse {
	t.Helper()
	resp, body := e.do(t, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out []dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func (e *testEnv) listLogs(t *testing.T) []dto.AuditEntryResponse {
	t.Helper()
	resp, body := e.do(t, httptest.NewRequest(http.MethodGet, "/api/logs", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out []dto.AuditEntryResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func (e *testEnv) createSupplier(t *testing.T) {
	t.Helper()
	resp, _ := e.do(t, jsonRequest(http.MethodPost, "/api/suppliers", dto.RegisterSupplierRequest{
		Name: "Acme", StateID: 1, Phone: "11 4000-0000", Email: "acme@x.dev", CategoryID: 1,
	}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_RegistroYLogin(t *testing.T) {
	env := buildTestApp(t, false)

	resp, body := env.do(t, jsonRequest(http.MethodPost, "/api/auth/register", dto.RegisterRequest{Name: "Ana", Email: "ana@x.dev", Password: "segredo"}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var msg dto.MessageResponse
	require.NoError(t, json.Unmarshal(body, &msg))
	assert.True(t, msg.Success)

	resp, body = env.do(t, jsonRequest(http.MethodPost, "/api/auth/register", dto.RegisterRequest{Name: "Ana", Email: "ana@x.dev", Password: "outra"}))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "USER_EXISTS", decodeError(t, body).Code)

	resp, body = env.do(t, jsonRequest(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "ana@x.dev", Password: "segredo"}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))
	assert.Equal(t, "ana@x.dev", login.User.Email)
	assert.NotEmpty(t, login.Token)

	resp, body = env.do(t, jsonRequest(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "ana@x.dev", Password: "errada"}))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Credenciais inválidas!", decodeError(t, body).Message)
}

func TestAuthMiddleware_SinTokenOTokenInvalido(t *testing.T) {
	env := buildTestApp(t, false)

	cases := map[string]string{
		"sin header":      "",
		"esquema errado":  "Basic abc",
		"token vacío":     "Bearer ",
		"firma inválida":  "Bearer abc.def.ghi",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/products/1", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, _ := env.do(t, req)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestAuthMiddleware_TokenDeOtroSecret(t *testing.T) {
	env := buildTestApp(t, false)
	tok, err := pkgjwt.Generate("otro-secret", "test", 60, pkgjwt.Identity{UserID: 1, Email: "x@x.dev"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, _ := env.do(t, req)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUsers_ListaSinHash(t *testing.T) {
	env := buildTestApp(t, false)
	token := env.userToken(t, "admin@x.dev", domain.LevelElevated)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", token)
	resp, body := env.do(t, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(body), "password")
	assert.Contains(t, string(body), "admin@x.dev")
}

// ──────────────────────────────────────────────────────────────────────────────
// Referencia y proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestReferencia_CategoriasYEstados(t *testing.T) {
	env := buildTestApp(t, false)

	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"id":1,"name":"Bebidas"}]`, string(body))

	resp, body = env.do(t, httptest.NewRequest(http.MethodGet, "/api/states", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"id":1,"name":"São Paulo","abbreviation":"SP"}]`, string(body))
}

func TestProveedores_RegistroPublicoYDuplicado(t *testing.T) {
	env := buildTestApp(t, false)
	env.createSupplier(t)

	resp, body := env.do(t, jsonRequest(http.MethodPost, "/api/suppliers", dto.RegisterSupplierRequest{Name: "Acme", StateID: 1, CategoryID: 1}))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Erro: Fornecedor já cadastrado!", decodeError(t, body).Message)

	resp, body = env.do(t, httptest.NewRequest(http.MethodGet, "/api/suppliers", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []dto.SupplierResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)
}

func TestProveedores_RegistroConAutenticacion(t *testing.T) {
	env := buildTestApp(t, true)
	in := dto.RegisterSupplierRequest{Name: "Acme", StateID: 1, CategoryID: 1}

	resp, _ := env.do(t, jsonRequest(http.MethodPost, "/api/suppliers", in))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := jsonRequest(http.MethodPost, "/api/suppliers", in)
	req.Header.Set("Authorization", env.userToken(t, "leitor@x.dev", domain.LevelReadOnly))
	resp, _ = env.do(t, req)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = jsonRequest(http.MethodPost, "/api/suppliers", in)
	req.Header.Set("Authorization", env.userToken(t, "padrao@x.dev", domain.LevelStandard))
	resp, _ = env.do(t, req)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductos_EscenarioWidget(t *testing.T) {
	env := buildTestApp(t, false)
	env.createSupplier(t)
	standard := env.userToken(t, "padrao@x.dev", domain.LevelStandard)
	admin := env.userToken(t, "admin@x.dev", domain.LevelElevated)

	// Alta por nivel 2
	resp, _ := env.do(t, multipartRequest(t, http.MethodPost, "/api/products", standard, map[string]string{
		"name": "Widget", "quantity": "10", "price": "9.99", "supplier_id": "1",
	}, []byte("png-bytes")))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	products := env.listProducts(t)
	require.Len(t, products, 1)
	widget := products[0]
	assert.Equal(t, 10, widget.Quantity)
	assert.Equal(t, "Acme", widget.SupplierName)
	require.NotNil(t, widget.Image)
	exists, err := afero.Exists(env.fs, *widget.Image)
	require.NoError(t, err)
	assert.True(t, exists)
	require.Len(t, env.listLogs(t), 1)

	path := "/api/products/" + itoa(widget.ID)

	// Cantidad < 5 rechazada sin cambios
	resp, body := env.do(t, multipartRequest(t, http.MethodPut, path, standard, map[string]string{"quantity": "3"}, nil))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "QUANTITY_TOO_LOW", decodeError(t, body).Code)
	assert.Equal(t, 10, env.listProducts(t)[0].Quantity)

	// Edición parcial válida
	resp, _ = env.do(t, multipartRequest(t, http.MethodPut, path, standard, map[string]string{"quantity": "8"}, nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := env.listProducts(t)[0]
	assert.Equal(t, 8, updated.Quantity)
	assert.Equal(t, "Widget", updated.Name)
	assert.Equal(t, *widget.Image, *updated.Image, "sin imagen nueva se conserva la anterior")
	require.Len(t, env.listLogs(t), 2)

	// Eliminación por nivel 2 prohibida
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	req.Header.Set("Authorization", standard)
	resp, body = env.do(t, req)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Usuário sem permissão", decodeError(t, body).Message)
	assert.Len(t, env.listProducts(t), 1)

	// Eliminación por nivel 3
	req = httptest.NewRequest(http.MethodDelete, path, nil)
	req.Header.Set("Authorization", admin)
	resp, _ = env.do(t, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, env.listProducts(t))
	exists, err = afero.Exists(env.fs, *widget.Image)
	require.NoError(t, err)
	assert.False(t, exists)

	logs := env.listLogs(t)
	require.Len(t, logs, 3)
	assert.True(t, strings.HasPrefix(logs[2].Description, "Usuário 'admin@x.dev' excluiu o produto (Widget)"))

	// Segunda eliminación: no encontrado
	req = httptest.NewRequest(http.MethodDelete, path, nil)
	req.Header.Set("Authorization", admin)
	resp, _ = env.do(t, req)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProductos_NivelUnoNoCrea(t *testing.T) {
	env := buildTestApp(t, false)
	env.createSupplier(t)
	reader := env.userToken(t, "leitor@x.dev", domain.LevelReadOnly)

	resp, _ := env.do(t, multipartRequest(t, http.MethodPost, "/api/products", reader, map[string]string{
		"name": "Widget", "quantity": "10", "price": "9.99", "supplier_id": "1",
	}, nil))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Empty(t, env.listProducts(t))
	assert.Empty(t, env.listLogs(t))
}

func TestProductos_CamposInvalidos(t *testing.T) {
	env := buildTestApp(t, false)
	env.createSupplier(t)
	token := env.userToken(t, "padrao@x.dev", domain.LevelStandard)

	resp, _ := env.do(t, multipartRequest(t, http.MethodPost, "/api/products", token, map[string]string{
		"name": "Widget", "quantity": "dez", "price": "9.99", "supplier_id": "1",
	}, nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, multipartRequest(t, http.MethodPost, "/api/products", token, map[string]string{
		"name": "Widget", "quantity": "10", "price": "9.99", "supplier_id": "77",
	}, nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, multipartRequest(t, http.MethodPut, "/api/products/abc", token, map[string]string{"quantity": "8"}, nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProductos_PermisoAntesQueValidarCampos(t *testing.T) {
	env := buildTestApp(t, false)
	env.createSupplier(t)
	reader := env.userToken(t, "leitor@x.dev", domain.LevelReadOnly)
	standard := env.userToken(t, "padrao@x.dev", domain.LevelStandard)

	resp, body := env.do(t, multipartRequest(t, http.MethodPost, "/api/products", reader, map[string]string{
		"name": "Widget", "quantity": "dez", "price": "9.99", "supplier_id": "1",
	}, nil))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Usuário sem permissão", decodeError(t, body).Message)

	resp, _ = env.do(t, multipartRequest(t, http.MethodPut, "/api/products/1", reader, map[string]string{"quantity": "x"}, nil))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = env.do(t, multipartRequest(t, http.MethodPut, "/api/products/abc", reader, map[string]string{"quantity": "8"}, nil))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req := httptest.NewRequest(http.MethodDelete, "/api/products/abc", nil)
	req.Header.Set("Authorization", standard)
	resp, _ = env.do(t, req)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	assert.Empty(t, env.listProducts(t))
	assert.Empty(t, env.listLogs(t))
}

func TestProductos_ValoresFueraDeRango(t *testing.T) {
	env := buildTestApp(t, false)
	env.createSupplier(t)
	token := env.userToken(t, "padrao@x.dev", domain.LevelStandard)

	resp, _ := env.do(t, multipartRequest(t, http.MethodPost, "/api/products", token, map[string]string{
		"name": "Widget", "quantity": "3000000000", "price": "9.99", "supplier_id": "1",
	}, nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, multipartRequest(t, http.MethodPost, "/api/products", token, map[string]string{
		"name": "Widget", "quantity": "10", "price": "10000000000", "supplier_id": "1",
	}, nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, env.listProducts(t))
}

func TestProductos_ActualizarConImagenNueva(t *testing.T) {
	env := buildTestApp(t, false)
	env.createSupplier(t)
	token := env.userToken(t, "padrao@x.dev", domain.LevelStandard)

	resp, _ := env.do(t, multipartRequest(t, http.MethodPost, "/api/products", token, map[string]string{
		"name": "Widget", "quantity": "10", "price": "9.99", "supplier_id": "1",
	}, []byte("v1")))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	before := env.listProducts(t)[0]

	resp, _ = env.do(t, multipartRequest(t, http.MethodPut, "/api/products/"+itoa(before.ID), token, nil, []byte("v2")))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	after := env.listProducts(t)[0]
	require.NotNil(t, after.Image)
	assert.NotEqual(t, *before.Image, *after.Image)
	old, _ := afero.Exists(env.fs, *before.Image)
	assert.False(t, old)
	data, err := afero.ReadFile(env.fs, *after.Image)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

// ──────────────────────────────────────────────────────────────────────────────
// Histórico
// ──────────────────────────────────────────────────────────────────────────────

func TestLogs_PDFRequiereTokenYDevuelvePDF(t *testing.T) {
	env := buildTestApp(t, false)

	resp, _ := env.do(t, httptest.NewRequest(http.MethodGet, "/api/logs/pdf", nil))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/logs/pdf", nil)
	req.Header.Set("Authorization", env.userToken(t, "leitor@x.dev", domain.LevelReadOnly))
	resp, body := env.do(t, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "historico-")
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
