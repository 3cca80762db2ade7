package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/attendance-service/internal/api/http"
	"github.com/spec-kit/attendance-service/internal/api/http/handlers"
	"github.com/spec-kit/attendance-service/internal/config"
	"github.com/spec-kit/attendance-service/internal/events"
	"github.com/spec-kit/attendance-service/internal/observability"
	"github.com/spec-kit/attendance-service/internal/persistence"
	"github.com/spec-kit/attendance-service/internal/repository"
	"github.com/spec-kit/attendance-service/internal/service"
	"github.com/spec-kit/attendance-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	catalog, err := loadCatalog(ctx, pg, logger)
	if err != nil {
		logger.Fatal("failed to load event catalog", zap.Error(err))
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	rabbit, err := persistence.NewRabbitMQ(cfg.RabbitMQ, logger)
	if err != nil {
		logger.Fatal("failed to connect rabbitmq", zap.Error(err))
	}
	defer rabbit.Close()

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger,
		service.NotificationSink{Name: "redis", Topic: cfg.Notification.RedisChannel, Publisher: redis},
		service.NotificationSink{Name: "rabbitmq", Topic: cfg.Notification.RabbitRoutingKey, Publisher: rabbit},
	)
	worker.StartNotificationWorker(notificationService)

	attendanceService := service.NewAttendanceService(service.AttendanceDependencies{
		EventRepo:    catalog,
		AttendeeRepo: repository.NewMemoryAttendeeRepository(),
		Dispatcher:   dispatcher,
		Logger:       logger,
	})

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
			"rabbitmq": rabbit,
		}),
		Attendees: handlers.NewAttendeesHandler(attendanceService),
		Metrics:   handlers.NewMetricsHandler(metrics),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// loadCatalog sources events from Postgres when connected, otherwise (or
// when the table is empty) from the built-in defaults.
func loadCatalog(ctx context.Context, pg *persistence.Postgres, logger *zap.Logger) (repository.EventRepository, error) {
	pool := pg.PoolHandle()
	if pool == nil {
		return repository.NewEventCatalog(repository.DefaultEvents), nil
	}

	loaded, err := repository.LoadEventCatalog(ctx, pool)
	if err != nil {
		return nil, err
	}
	if len(loaded) == 0 {
		logger.Warn("events table empty; using built-in event catalog")
		return repository.NewEventCatalog(repository.DefaultEvents), nil
	}

	logger.Info("event catalog loaded", zap.Int("events", len(loaded)))
	return repository.NewEventCatalog(loaded), nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
