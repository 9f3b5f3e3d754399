package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"socialfeed/internal/logging"
	"socialfeed/internal/models"
)

type BreakerConfig struct {
	FailureThreshold uint32
	Timeout          time.Duration
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		Timeout:          5 * time.Minute,
	}
}

// BreakerClient - перестает обращаться к провайдеру после серии ошибок.
// Отклоненный вызов сразу возвращает gobreaker.ErrOpenState, повторов нет
type BreakerClient struct {
	Client
	cb *gobreaker.CircuitBreaker[[]models.Post]
}

func WithBreaker(client Client, cfg BreakerConfig, logger logging.Logger) *BreakerClient {
	settings := gobreaker.Settings{
		Name:    string(client.Source()),
		Timeout: cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotConfigured) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logging.Fields{
				"provider": name,
				"from":     from.String(),
				"to":       to.String(),
			}).Warn("Состояние предохранителя провайдера изменилось")
		},
	}

	return &BreakerClient{
		Client: client,
		cb:     gobreaker.NewCircuitBreaker[[]models.Post](settings),
	}
}

func (b *BreakerClient) FetchPosts(ctx context.Context, limit int) ([]models.Post, error) {
	posts, err := b.cb.Execute(func() ([]models.Post, error) {
		return b.Client.FetchPosts(ctx, limit)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("провайдер %s временно недоступен: %w", b.Source(), err)
	}
	return posts, err
}

func (b *BreakerClient) State() string {
	return b.cb.State().String()
}
