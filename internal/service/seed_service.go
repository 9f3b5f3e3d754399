package service

import (
	"context"
	"fmt"
	"time"

	"socialfeed/internal/logging"
	"socialfeed/internal/metrics"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
)

type SeedService interface {
	// Seed - удаляет строку-маркер каждого источника и вставляет тестовый набор.
	// Остальные строки не трогаются
	Seed(ctx context.Context) (models.SeedReport, error)
}

type seedService struct {
	postRepo repository.PostRepository
	metrics  *metrics.Metrics
	logger   logging.Logger
	now      func() time.Time
}

func NewSeedService(postRepo repository.PostRepository, metrics *metrics.Metrics, logger logging.Logger) SeedService {
	return &seedService{
		postRepo: postRepo,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *seedService) Seed(ctx context.Context) (models.SeedReport, error) {
	placeholders := placeholderPosts(s.now())
	report := models.SeedReport{}

	for _, source := range models.Sources {
		posts := placeholders[source]

		if _, err := s.postRepo.DeleteByPostID(ctx, source, SentinelPostID); err != nil {
			s.metrics.ObserveSeed("error")
			return report, &StoreError{Op: "seed cleanup " + string(source), Err: err}
		}

		if err := s.postRepo.InsertBatch(ctx, source, posts); err != nil {
			s.metrics.ObserveSeed("error")
			return report, &StoreError{Op: "seed insert " + string(source), Err: err}
		}

		report.Results = append(report.Results, models.SyncResult{
			Source:  source,
			Status:  models.StatusSuccess,
			Message: fmt.Sprintf("добавлено тестовых постов: %d", len(posts)),
			Count:   len(posts),
		})

		switch source {
		case models.SourceInstagram:
			report.InstagramCount = len(posts)
		case models.SourceLinkedIn:
			report.LinkedInCount = len(posts)
		}
	}

	s.metrics.ObserveSeed("success")
	s.logger.WithFields(logging.Fields{
		"instagram": report.InstagramCount,
		"linkedin":  report.LinkedInCount,
	}).Info("Тестовые данные добавлены")

	return report, nil
}
