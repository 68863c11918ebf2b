package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	_ "github.com/renanb12/Projeto-Integrador/docs"
	appanalytics "github.com/renanb12/Projeto-Integrador/internal/application/analytics"
	"github.com/renanb12/Projeto-Integrador/internal/application/inventory"
	"github.com/renanb12/Projeto-Integrador/internal/application/usecase"
	domaininv "github.com/renanb12/Projeto-Integrador/internal/domain/inventory"
	infrapdf "github.com/renanb12/Projeto-Integrador/internal/infrastructure/pdf"
	"github.com/renanb12/Projeto-Integrador/internal/infrastructure/postgres"
	httpRouter "github.com/renanb12/Projeto-Integrador/internal/interfaces/http"
	"github.com/renanb12/Projeto-Integrador/pkg/config"
	"github.com/renanb12/Projeto-Integrador/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := migrateUp(cfg.DB.ConnectionString(), log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	exitRepo := postgres.NewExitRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	importUC := inventory.NewImportInvoiceUseCase(txRunner, domaininv.NewReconciler(), log.Component("import"))
	entryUC := inventory.NewEntryQueryUseCase(entryRepo, infrapdf.NewMarotoPDFGenerator())
	exitUC := inventory.NewExitUseCase(txRunner, exitRepo, log.Component("exits"))
	productUC := usecase.NewProductUseCase(txRunner, productRepo)
	historyUC := usecase.NewHistoryUseCase(historyRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo, historyRepo, productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Upload.MaxBytes(),
		ErrorHandler: httpRouter.ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Projeto Integrador API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	// Documento OpenAPI embebido; disponible aunque no exista docs/swagger.json en disco.
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return err
		}
		c.Type("json")
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Importer:  importUC,
		Entries:   entryUC,
		Products:  productUC,
		Exits:     exitUC,
		History:   historyUC,
		Dashboard: dashboardUC,
		UploadDir: cfg.Upload.Dir,
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

func migrateUp(databaseURL string, log *logger.Logger) error {
	mg, err := postgres.NewMigrator(databaseURL, log.Component("migrate"))
	if err != nil {
		return err
	}
	defer func() { _ = mg.Close() }()
	return mg.Up()
}
