package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/stockgenius-api/internal/application/alerting"
	"github.com/jhoicas/stockgenius-api/internal/application/prediction"
	"github.com/jhoicas/stockgenius-api/internal/application/usecase"
	"github.com/jhoicas/stockgenius-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockgenius-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/stockgenius-api/internal/interfaces/http"
	"github.com/jhoicas/stockgenius-api/pkg/config"
	"github.com/jhoicas/stockgenius-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	productRepo := postgres.NewProductRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	sensorRepo := postgres.NewSensorRepository(pool)
	readingRepo := postgres.NewSensorReadingRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)

	engine := alerting.NewDefaultEngine(alerting.Deps{
		Products:    productRepo,
		Inventories: inventoryRepo,
		Sensors:     sensorRepo,
		Readings:    readingRepo,
		Orders:      orderRepo,
		Users:       userRepo,
		Alerts:      alertRepo,
	}, log)

	alertUC := usecase.NewAlertUseCase(alertRepo)
	predictionUC := prediction.NewUseCase(productRepo, inventoryRepo, orderRepo, log)

	var sched *scheduler.Scheduler
	if cfg.Alerts.SchedulerEnabled {
		sched = scheduler.New(engine, cfg.Alerts.SchedulerInterval, log)
		sched.Start(ctx)
	}

	// Listener dedicado para Prometheus, separado de la API Fiber.
	var metricsSrv *http.Server
	if cfg.Alerts.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: cfg.Alerts.MetricsAddr, Handler: mux}
		go func() {
			log.Info().Str("addr", cfg.Alerts.MetricsAddr).Msg("listener de métricas iniciado")
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("listener de métricas finalizado")
			}
		}()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AlertUC:      alertUC,
		PredictionUC: predictionUC,
		Engine:       engine,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log,
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

	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("apagado del listener de métricas")
		}
	}

	log.Info().Msg("aplicación detenida")
}
