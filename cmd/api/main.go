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

	appanalytics "github.com/jhoicas/comex-crm/internal/application/analytics"
	appimporter "github.com/jhoicas/comex-crm/internal/application/importer"
	"github.com/jhoicas/comex-crm/internal/application/usecase"
	infrapdf "github.com/jhoicas/comex-crm/internal/infrastructure/pdf"
	"github.com/jhoicas/comex-crm/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/comex-crm/internal/interfaces/http"
	"github.com/jhoicas/comex-crm/pkg/config"
	"github.com/jhoicas/comex-crm/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	orderRepo := postgres.NewOrderRepository(pool)
	entityRepo := postgres.NewNamedEntityRepository(pool)
	userRepo := postgres.NewCompanyUserRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	orderUC := usecase.NewOrderUseCase(orderRepo, entityRepo)
	entityUC := usecase.NewNamedEntityUseCase(entityRepo)
	companyUserUC := usecase.NewCompanyUserUseCase(userRepo)
	if changed, err := companyUserUC.EnsureAdmin(ctx, cfg.App.BootstrapAdminEmail); err != nil {
		log.Fatal().Err(err).Msg("usuario admin inicial")
	} else if changed {
		log.Info().Str("email", cfg.App.BootstrapAdminEmail).Msg("usuario admin inicial asegurado")
	}
	statsUC := appanalytics.NewStatsUseCase(statsRepo)
	ordersAnalyticsUC := appanalytics.NewOrdersAnalyticsUseCase(statsRepo)

	// PDF: cuentas por cobrar
	pdfGenerator := infrapdf.NewReceivablesPDFGenerator(cfg.App.Name)
	financialUC := appanalytics.NewFinancialUseCase(statsRepo, entityRepo, pdfGenerator)

	batchImporter := appimporter.NewBatchImporter(
		orderRepo,
		appimporter.NewEntityResolver(entityRepo),
		log.Component("importer"),
		cfg.Import.MaxRows,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		// el límite propio del upload lo valida el handler; aquí solo el margen del multipart
		BodyLimit: cfg.Import.MaxUploadBytes() + 1024*1024,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Comex CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "ok"
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			dbStatus = "unavailable"
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "database": dbStatus})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrderUC:         orderUC,
		EntityUC:        entityUC,
		CompanyUserUC:   companyUserUC,
		StatsUC:         statsUC,
		FinancialUC:     financialUC,
		OrdersAnalytics: ordersAnalyticsUC,
		Importer:        batchImporter,
		MaxUploadBytes:  int64(cfg.Import.MaxUploadBytes()),
		JWTSecret:       cfg.JWT.Secret,
		JWTIssuer:       cfg.JWT.Issuer,
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
