package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/cse-sg/absence-service/internal/api/http"
	"github.com/cse-sg/absence-service/internal/api/http/handlers"
	"github.com/cse-sg/absence-service/internal/config"
	"github.com/cse-sg/absence-service/internal/events"
	"github.com/cse-sg/absence-service/internal/observability"
	"github.com/cse-sg/absence-service/internal/persistence"
	"github.com/cse-sg/absence-service/internal/service"
	"github.com/cse-sg/absence-service/internal/session"
	"github.com/cse-sg/absence-service/internal/store"
	"github.com/cse-sg/absence-service/internal/worker"
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

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect document store", zap.Error(err))
	}
	defer mongo.Close(context.Background())

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	notifier := store.NewNotifier()
	staffStore := store.NewMongoStaffStore(mongo.DB, notifier)
	absenceStore := store.NewMongoAbsenceStore(mongo.DB, notifier)

	dispatcher := events.NewInMemoryDispatcher()

	directoryService := service.NewDirectoryService(service.DirectoryDependencies{
		StaffStore: staffStore,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	absenceService := service.NewAbsenceService(service.AbsenceDependencies{
		AbsenceStore: absenceStore,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	profileService := service.NewProfileService(staffStore, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	tokens := session.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	controller := session.NewController(session.ControllerDependencies{
		Sessions:  session.NewRedisSessionStore(redis.Client, cfg.Auth.LoginSessionTTL()),
		Codes:     session.NewRedisCodeStore(redis.Client),
		Directory: directoryService,
		Tokens:    tokens,
		Logger:    logger,
	})
	authMiddleware := session.NewMiddleware(tokens, staffStore)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, mongo, redis),
		Sessions:       handlers.NewSessionHandler(controller),
		Absences:       handlers.NewAbsenceHandler(absenceService),
		Staff:          handlers.NewStaffHandler(directoryService),
		Profile:        handlers.NewProfileHandler(profileService),
		Views:          handlers.NewViewsHandler(),
		Live:           handlers.NewLiveHandler(absenceService, directoryService, logger),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
