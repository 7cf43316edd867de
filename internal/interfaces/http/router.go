package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/catalog"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *catalog.ProductUseCase
	SupplierUC  *usecase.SupplierUseCase
	ReferenceUC *usecase.ReferenceUseCase
	AuditUC     *usecase.AuditUseCase
	JWTSecret   string
	UploadsDir  string // servido en /uploads; vacío = no se sirve
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	requireToken := AuthMiddleware(deps.JWTSecret)
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log.Component("auth"))
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	api.Get("/users", requireToken, authHandler.ListUsers)

	// Proveedores: el registro exige token solo si está configurado así
	supplierHandler := NewSupplierHandler(deps.SupplierUC, log.Component("suppliers"))
	suppliers := api.Group("/suppliers")
	if deps.SupplierUC.RequiresAuth() {
		suppliers.Post("/", requireToken, supplierHandler.Register)
	} else {
		suppliers.Post("/", supplierHandler.Register)
	}
	suppliers.Get("/", supplierHandler.List)

	referenceHandler := NewReferenceHandler(deps.ReferenceUC, log.Component("reference"))
	api.Get("/categories", referenceHandler.Categories)
	api.Get("/states", referenceHandler.States)

	// Products: lectura pública, escrituras con Bearer Token
	productHandler := NewProductHandler(deps.ProductUC, log.Component("products"))
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", requireToken, productHandler.Create)
	products.Put("/:id", requireToken, productHandler.Update)
	products.Delete("/:id", requireToken, productHandler.Delete)

	auditHandler := NewAuditHandler(deps.AuditUC, log.Component("logs"))
	logs := api.Group("/logs")
	logs.Get("/", auditHandler.List)
	logs.Get("/pdf", requireToken, auditHandler.PDF)

	if deps.UploadsDir != "" {
		app.Static("/uploads", deps.UploadsDir, fiber.Static{Browse: false})
	}
}
