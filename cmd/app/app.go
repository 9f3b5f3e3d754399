package app

import (
	"context"
	"time"

	"socialfeed/internal/config"
	"socialfeed/internal/database"
	"socialfeed/internal/logging"
	"socialfeed/internal/metrics"
	"socialfeed/internal/models"
	"socialfeed/internal/provider"
	"socialfeed/internal/repository"
	"socialfeed/internal/service"
	"socialfeed/internal/storage"
)

// App - подключение к БД и архиву снимков, сборка репозиториев и сервисов
func App(cfg *config.Config, logger logging.Logger, m *metrics.Metrics) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Не удалось подключиться к БД")
	}

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, Providers(cfg, logger), Archive(cfg, logger), m, cfg, logger)

	return db, repo, services
}

// Providers - по клиенту на источник за предохранителем, с общим HTTP-клиентом и таймаутом провайдера
func Providers(cfg *config.Config, logger logging.Logger) map[models.Source]provider.Client {
	httpClient := provider.NewHTTPClient(cfg.ProviderTimeout)
	breaker := provider.DefaultBreakerConfig()

	return map[models.Source]provider.Client{
		models.SourceInstagram: provider.WithBreaker(provider.NewInstagramClient(cfg.Instagram, httpClient), breaker, logger),
		models.SourceLinkedIn:  provider.WithBreaker(provider.NewLinkedInClient(cfg.LinkedIn, httpClient), breaker, logger),
	}
}

// Archive - архив в MinIO или пустышка, если MinIO не настроен или недоступен
func Archive(cfg *config.Config, logger logging.Logger) storage.Archive {
	if !cfg.MinIO.Enabled() {
		return storage.NopArchive{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	archive, err := storage.NewMinIOArchive(ctx, cfg.MinIO)
	if err != nil {
		logger.WithError(err).Warn("MinIO недоступен, архив снимков отключен")
		return storage.NopArchive{}
	}

	logger.WithField("bucket", cfg.MinIO.BucketName).Info("Архив снимков включен")
	return archive
}
