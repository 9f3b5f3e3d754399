package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"socialfeed/cmd/app"
	"socialfeed/internal/config"
	handlers "socialfeed/internal/handler"
	"socialfeed/internal/logging"
	"socialfeed/internal/metrics"
	"socialfeed/internal/middleware"
	"socialfeed/internal/scheduler"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()
	logger := logging.NewLoggerWithService("socialfeed", cfg.LogLevel)

	m := metrics.New()

	db, _, services := app.App(cfg, logger, m)
	defer db.CloseDB()

	// setting up the scheduler
	cron := scheduler.New(cfg.SyncJobTimeout, logger)
	syncJob := func(ctx context.Context) error {
		report := services.Scheduler.RunScheduledSync(ctx)
		if !report.Success {
			return errors.New("плановая синхронизация завершилась с ошибкой")
		}
		return nil
	}
	if err := cron.AddJob("scheduled-sync", cfg.SyncSchedule, syncJob); err != nil {
		logger.WithError(err).Fatal("Не удалось настроить планировщик")
	}
	cron.Start()

	handler := handlers.NewHandlers(services, db, cron, cfg, logger)

	if cfg.SyncOnStart {
		go func() {
			if err := cron.RunNow("scheduled-sync", syncJob); err != nil {
				logger.WithError(err).Warn("Синхронизация при запуске завершилась с ошибкой")
			}
		}()
	}

	router := newRouter(handler, cfg, m)

	handlerChain := middleware.Chain(
		router,
		middleware.RecoverMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware,
		m.InstrumentHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           handlerChain,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(logging.Fields{
			"addr":        addr,
			"environment": cfg.Environment,
			"schedule":    cfg.SyncSchedule,
		}).Info("Сервер запущен")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Ошибка запуска сервера")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Завершение работы")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Ошибка при остановке сервера")
	}

	select {
	case <-cron.Stop().Done():
	case <-ctx.Done():
		logger.Warn("Задачи планировщика не завершились вовремя")
	}
}

func newRouter(handler *handlers.Handlers, cfg *config.Config, m *metrics.Metrics) *mux.Router {
	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/", handler.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)
	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/instagram-posts", handler.GetInstagramPosts).Methods(http.MethodGet)
	api.HandleFunc("/linkedin-posts", handler.GetLinkedInPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/{source}", handler.GetPosts).Methods(http.MethodGet)

	api.Handle("/sync", middleware.Chain(
		http.HandlerFunc(handler.SyncSource),
		middleware.RateLimitMiddleware(cfg.RateLimitPerMinute),
		middleware.SyncAuthMiddleware(cfg),
	)).Methods(http.MethodPost)
	api.HandleFunc("/cron/sync", handler.CronSync).Methods(http.MethodGet, http.MethodPost)
	api.Handle("/seed", middleware.Chain(
		http.HandlerFunc(handler.Seed),
		middleware.RateLimitMiddleware(cfg.RateLimitPerMinute),
	)).Methods(http.MethodPost)

	return router
}
