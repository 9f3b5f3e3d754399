package service

import (
	"context"
	"fmt"

	"socialfeed/internal/logging"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
)

type SchedulerService interface {
	// RunScheduledSync - синхронизация настроенных источников, затем заполнение, если какая-то таблица пуста
	RunScheduledSync(ctx context.Context) models.ScheduledSyncReport
}

type schedulerService struct {
	postRepo repository.PostRepository
	sync     SyncService
	seed     SeedService
	logger   logging.Logger
}

func NewSchedulerService(
	postRepo repository.PostRepository,
	sync SyncService,
	seed SeedService,
	logger logging.Logger,
) SchedulerService {
	return &schedulerService{
		postRepo: postRepo,
		sync:     sync,
		seed:     seed,
		logger:   logger,
	}
}

func (s *schedulerService) RunScheduledSync(ctx context.Context) models.ScheduledSyncReport {
	report := models.ScheduledSyncReport{Success: true}

	for _, source := range models.Sources {
		result := s.syncOne(ctx, source)
		switch source {
		case models.SourceInstagram:
			report.Instagram = result
		case models.SourceLinkedIn:
			report.LinkedIn = result
		}
	}

	needsSeed, err := s.anyEmpty(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Не удалось проверить количество постов")
		report.Success = false
		return report
	}

	if needsSeed {
		if _, err := s.seed.Seed(ctx); err != nil {
			s.logger.WithError(err).Error("Не удалось добавить тестовые данные")
			report.Success = false
			return report
		}
		report.Seeded = true
	}

	s.logger.WithFields(logging.Fields{
		"instagram": report.Instagram.Status,
		"linkedin":  report.LinkedIn.Status,
		"seeded":    report.Seeded,
	}).Info("Плановая синхронизация завершена")

	return report
}

func (s *schedulerService) syncOne(ctx context.Context, source models.Source) models.SyncResult {
	if !s.sync.Configured(source) {
		return models.SyncResult{
			Source:  source,
			Status:  models.StatusSkipped,
			Message: "учетные данные не настроены",
		}
	}

	// ошибка уже залогирована сервисом синхронизации и есть в результате
	result, _ := s.sync.Sync(ctx, string(source))
	return result
}

func (s *schedulerService) anyEmpty(ctx context.Context) (bool, error) {
	for _, source := range models.Sources {
		count, err := s.postRepo.Count(ctx, source)
		if err != nil {
			return false, &StoreError{Op: fmt.Sprintf("count %s", source), Err: err}
		}
		if count == 0 {
			return true, nil
		}
	}
	return false, nil
}
