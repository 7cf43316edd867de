package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/estoque-api/docs"
	"github.com/jhoicas/estoque-api/internal/application/access"
	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/catalog"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/estoque-api/internal/infrastructure/pdf"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-api/internal/infrastructure/referencedata"
	"github.com/jhoicas/estoque-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/estoque-api/internal/interfaces/http"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// @title                       Estoque API
// @version                     1.0
// @description                 Cadastro de usuários, fornecedores e produtos com histórico de alterações.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	loc, err := time.LoadLocation(cfg.App.TimeZone)
	if err != nil {
		log.Warn().Err(err).Str("tz", cfg.App.TimeZone).Msg("zona horaria inválida, se usa la local")
		loc = time.Local
	}

	images, err := storage.NewDiskImageStore(cfg.Storage.UploadsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de uploads")
	}

	ctx := context.Background()
	var (
		userRepo      repository.UserRepository
		supplierRepo  repository.SupplierRepository
		referenceRepo repository.ReferenceRepository
		productRepo   repository.ProductRepository
		auditRepo     repository.AuditRepository
		txRunner      catalog.TxRunner
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		if err := seedMemory(store); err != nil {
			log.Fatal().Err(err).Msg("datos de referencia")
		}
		userRepo = memory.NewUserRepository(store)
		supplierRepo = memory.NewSupplierRepository(store)
		referenceRepo = memory.NewReferenceRepository(store)
		productRepo = memory.NewProductRepository(store)
		auditRepo = memory.NewAuditRepository(store)
		txRunner = memory.NewTxRunner(store)
		log.Warn().Msg("backend en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		userRepo = postgres.NewUserRepository(pool)
		supplierRepo = postgres.NewSupplierRepository(pool)
		referenceRepo = postgres.NewReferenceRepository(pool)
		productRepo = postgres.NewProductRepository(pool)
		auditRepo = postgres.NewAuditRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	gate := access.NewGate(userRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := catalog.NewProductUseCase(txRunner, gate, productRepo, images, log, loc)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, gate, cfg.Security.SupplierRequireAuth)
	referenceUC := usecase.NewReferenceUseCase(referenceRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo, infrapdf.NewAuditReportGenerator(), cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit(),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Estoque API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		SupplierUC:  supplierUC,
		ReferenceUC: referenceUC,
		AuditUC:     auditUC,
		JWTSecret:   cfg.JWT.Secret,
		UploadsDir:  cfg.Storage.UploadsDir,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func seedMemory(store *memory.Store) error {
	states, err := referencedata.DefaultStates()
	if err != nil {
		return err
	}
	categories, err := referencedata.DefaultCategories()
	if err != nil {
		return err
	}
	store.SeedStates(states...)
	store.SeedCategories(categories...)
	return nil
}
