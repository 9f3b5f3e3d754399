package service

import (
	"context"

	"socialfeed/internal/logging"
	"socialfeed/internal/metrics"
	"socialfeed/internal/models"
	"socialfeed/internal/provider"
	"socialfeed/internal/repository"
)

const (
	originStore    = "store"
	originProvider = "provider"
	originEmpty    = "empty"
)

type FeedService interface {
	// Posts - для известного источника ошибки не возвращает: при сбое пустой список
	// и заполненное поле Error. Ошибка только для неизвестного источника
	Posts(ctx context.Context, source string) (models.FeedResult, error)
}

type feedService struct {
	postRepo  repository.PostRepository
	providers map[models.Source]provider.Client
	metrics   *metrics.Metrics
	logger    logging.Logger
	limit     int
}

func NewFeedService(
	postRepo repository.PostRepository,
	providers map[models.Source]provider.Client,
	metrics *metrics.Metrics,
	logger logging.Logger,
	limit int,
) FeedService {
	return &feedService{
		postRepo:  postRepo,
		providers: providers,
		metrics:   metrics,
		logger:    logger,
		limit:     limit,
	}
}

func (s *feedService) Posts(ctx context.Context, name string) (models.FeedResult, error) {
	source, ok := models.ParseSource(name)
	if !ok {
		return models.FeedResult{Posts: []models.Post{}}, &InvalidSourceError{Value: name}
	}

	var lastErr error

	posts, err := s.postRepo.List(ctx, source, s.limit)
	if err != nil {
		lastErr = &StoreError{Op: "list " + string(source), Err: err}
		s.logger.WithError(err).WithField("source", source).Warn("Не удалось прочитать посты из хранилища")
	} else if len(posts) > 0 {
		s.metrics.ObserveFeed(source, originStore)
		return models.FeedResult{Posts: posts}, nil
	}

	client, ok := s.providers[source]
	if ok && client.Configured() {
		fetched, err := client.FetchPosts(ctx, s.limit)
		if err != nil {
			lastErr = &ProviderError{Source: source, Err: err}
			s.logger.WithError(err).WithField("source", source).Warn("Резервный запрос к провайдеру не удался")
		} else if len(fetched) > 0 {
			if len(fetched) > s.limit {
				fetched = fetched[:s.limit]
			}
			s.metrics.ObserveFeed(source, originProvider)
			return models.FeedResult{Posts: fetched}, nil
		}
	}

	s.metrics.ObserveFeed(source, originEmpty)

	result := models.FeedResult{Posts: []models.Post{}}
	if lastErr != nil {
		result.Error = lastErr.Error()
	}
	return result, nil
}
