package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appcustomer "github.com/jhoicas/customer-registry/internal/application/customer"
	"github.com/jhoicas/customer-registry/internal/infrastructure/kvstore"
	infrapdf "github.com/jhoicas/customer-registry/internal/infrastructure/pdf"
	"github.com/jhoicas/customer-registry/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/customer-registry/internal/interfaces/http"
	"github.com/jhoicas/customer-registry/pkg/config"
	"github.com/jhoicas/customer-registry/pkg/logger"
)

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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	kv, closeStore, err := kvstore.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("abrir almacenamiento")
	}
	defer closeStore()

	customerRepo := storage.NewCustomerRepository(kv, storage.WithKey(cfg.Storage.Key))
	state := appcustomer.NewState(customerRepo, log)
	if err := state.Load(ctx); err != nil {
		// La UI arranca igual y muestra el error; un GET /api/customers reintenta.
		log.Warn().Err(err).Msg("carga inicial de clientes")
	}

	pdfUC := appcustomer.NewPDFUseCase(customerRepo, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		State:         state,
		PDF:           pdfUC,
		Metrics:       httpRouter.NewMetrics(),
		Log:           log,
		AppName:       cfg.App.Name,
		StorageDriver: cfg.Storage.Driver,
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
