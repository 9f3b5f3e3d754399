package service

import (
	"socialfeed/internal/config"
	"socialfeed/internal/logging"
	"socialfeed/internal/metrics"
	"socialfeed/internal/models"
	"socialfeed/internal/provider"
	"socialfeed/internal/repository"
	"socialfeed/internal/storage"
)

type Service struct {
	Sync      SyncService
	Seed      SeedService
	Feed      FeedService
	Scheduler SchedulerService
}

func NewService(
	repo *repository.Repository,
	providers map[models.Source]provider.Client,
	archive storage.Archive,
	m *metrics.Metrics,
	cfg *config.Config,
	logger logging.Logger,
) *Service {
	syncService := NewSyncService(repo.Post, providers, archive, m, logger, cfg.SyncFetchLimit)
	seedService := NewSeedService(repo.Post, m, logger)

	return &Service{
		Sync:      syncService,
		Seed:      seedService,
		Feed:      NewFeedService(repo.Post, providers, m, logger, cfg.FeedLimit),
		Scheduler: NewSchedulerService(repo.Post, syncService, seedService, logger),
	}
}
