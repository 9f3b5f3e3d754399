package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"socialfeed/internal/logging"
	"socialfeed/internal/metrics"
	"socialfeed/internal/models"
	"socialfeed/internal/provider"
	"socialfeed/internal/repository"
	"socialfeed/internal/storage"
)

type SyncService interface {
	// Sync - загрузка свежих постов источника и замена сохраненных строк.
	// SyncResult заполнен всегда, в том числе при err != nil
	Sync(ctx context.Context, source string) (models.SyncResult, error)
	Configured(source models.Source) bool
}

type syncService struct {
	postRepo   repository.PostRepository
	providers  map[models.Source]provider.Client
	archive    storage.Archive
	metrics    *metrics.Metrics
	logger     logging.Logger
	fetchLimit int
	now        func() time.Time
}

func NewSyncService(
	postRepo repository.PostRepository,
	providers map[models.Source]provider.Client,
	archive storage.Archive,
	metrics *metrics.Metrics,
	logger logging.Logger,
	fetchLimit int,
) SyncService {
	return &syncService{
		postRepo:   postRepo,
		providers:  providers,
		archive:    archive,
		metrics:    metrics,
		logger:     logger,
		fetchLimit: fetchLimit,
		now:        time.Now,
	}
}

func (s *syncService) Configured(source models.Source) bool {
	client, ok := s.providers[source]
	return ok && client.Configured()
}

func (s *syncService) Sync(ctx context.Context, name string) (models.SyncResult, error) {
	source, ok := models.ParseSource(name)
	if !ok {
		err := &InvalidSourceError{Value: name}
		return models.SyncResult{Source: models.Source(name), Status: models.StatusError, Message: err.Error()}, err
	}

	start := s.now()
	result, err := s.sync(ctx, source)
	s.metrics.ObserveSync(result, s.now().Sub(start))

	entry := s.logger.WithFields(logging.Fields{
		"source":  source,
		"status":  result.Status,
		"count":   result.Count,
		"elapsed": s.now().Sub(start).String(),
	})
	if err != nil {
		entry.WithError(err).Warn("Синхронизация завершилась с ошибкой")
	} else {
		entry.Info("Синхронизация завершена")
	}

	return result, err
}

func (s *syncService) sync(ctx context.Context, source models.Source) (models.SyncResult, error) {
	result := models.SyncResult{Source: source}

	client, ok := s.providers[source]
	if !ok || !client.Configured() {
		err := &ConfigurationError{Source: source, Err: provider.ErrNotConfigured}
		result.Status = models.StatusError
		result.Message = err.Error()
		return result, err
	}

	posts, err := client.FetchPosts(ctx, s.fetchLimit)
	if err != nil {
		var wrapped error
		if errors.Is(err, provider.ErrNotConfigured) {
			wrapped = &ConfigurationError{Source: source, Err: err}
		} else {
			wrapped = &ProviderError{Source: source, Err: err}
		}
		result.Status = models.StatusError
		result.Message = wrapped.Error()
		return result, wrapped
	}

	// пустой успешный ответ не очищает таблицу
	if len(posts) == 0 {
		result.Status = models.StatusSuccess
		result.Message = "посты не найдены, сохраненные данные не изменены"
		return result, nil
	}

	if name, err := s.archive.SaveSnapshot(ctx, source, posts); err != nil {
		s.logger.WithError(err).WithField("source", source).Warn("Не удалось сохранить снимок в архив")
	} else if name != "" {
		s.logger.WithFields(logging.Fields{"source": source, "object": name}).Debug("Снимок сохранен в архив")
	}

	if err := s.postRepo.ReplaceAll(ctx, source, posts); err != nil {
		storeErr := &StoreError{Op: "replace " + string(source), Err: err}
		result.Status = models.StatusError
		result.Message = storeErr.Error()
		return result, storeErr
	}

	result.Status = models.StatusSuccess
	result.Count = len(posts)
	result.Message = fmt.Sprintf("синхронизировано постов: %d", len(posts))
	return result, nil
}
