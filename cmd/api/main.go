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

	"github.com/jhoicas/pos-core/internal/application/auth"
	"github.com/jhoicas/pos-core/internal/application/catalog"
	appsettlement "github.com/jhoicas/pos-core/internal/application/settlement"
	"github.com/jhoicas/pos-core/internal/application/stock"
	"github.com/jhoicas/pos-core/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/pos-core/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/pos-core/internal/interfaces/http"
	"github.com/jhoicas/pos-core/pkg/config"
	"github.com/jhoicas/pos-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
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

	unitRepo := postgres.NewUnitRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Candado distribuido por contacto: solo si hay Redis configurado.
	// Sin Redis las liquidaciones quedan serializadas por los bloqueos de fila.
	var locker appsettlement.ContactLocker
	if cfg.Redis.URL != "" {
		redisClient, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		locker = infraredis.NewContactLocker(redisClient, time.Duration(cfg.Redis.LockTTLSeconds)*time.Second)
		log.Info().Msg("candado de liquidaciones sobre Redis habilitado")
	} else {
		log.Warn().Msg("REDIS_URL vacío: liquidaciones serializadas solo por bloqueos de fila")
	}

	stockUC := stock.NewLedgerUseCase(txRunner, stockRepo, movementRepo, unitRepo, variantRepo, locationRepo)
	settlementUC := appsettlement.NewSettlePaymentUseCase(txRunner, contactRepo, locker)
	catalogUC := catalog.NewUnitCatalogUseCase(unitRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El middleware falla al
	// arrancar si el archivo no existe, así que solo se monta cuando está.
	const swaggerSpec = "./docs/swagger.json"
	if _, err := os.Stat(swaggerSpec); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpec,
			Path:     "docs",
			Title:    "POS Core API",
		}))
	} else {
		log.Warn().Str("file", swaggerSpec).Msg("swagger.json no encontrado; UI de documentación deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:      stockUC,
		SettlementUC: settlementUC,
		CatalogUC:    catalogUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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
