package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/espacio-datos-api/docs"
	"github.com/jhoicas/espacio-datos-api/internal/application/seed"
	"github.com/jhoicas/espacio-datos-api/internal/bootstrap"
	httpRouter "github.com/jhoicas/espacio-datos-api/internal/interfaces/http"
	"github.com/jhoicas/espacio-datos-api/pkg/config"
	"github.com/jhoicas/espacio-datos-api/pkg/logger"
)

// @title                       Espacio de Datos API
// @version                     1.0
// @description                 Portal CRM de incorporación de empresas a espacios de datos.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	storage, err := bootstrap.OpenStorage(ctx, cfg.DB, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer storage.Close()

	container := bootstrap.NewContainer(cfg, storage, log.Zerolog())

	// Datos demo: solo si SEED_DEMO=true (siempre conviene con STORE_DRIVER=memory).
	if cfg.App.SeedDemo {
		fixture, err := seed.Load(cfg.App.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Msg("fixture de seed")
		}
		res, err := container.NewSeeder(storage, log.Zerolog()).Apply(ctx, fixture)
		if err != nil {
			log.Fatal().Err(err).Msg("seed demo")
		}
		log.Info().
			Int("users", len(res.Users)).
			Int("companies", len(res.Companies)).
			Msg("datos demo cargados")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.TrimSpace(cfg.HTTP.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Espacio de Datos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, container.RouterDeps())

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
