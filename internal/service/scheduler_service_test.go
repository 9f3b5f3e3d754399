package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"socialfeed/internal/config"
	"socialfeed/internal/logging"
	"socialfeed/internal/metrics"
	"socialfeed/internal/models"
	"socialfeed/internal/provider"
	"socialfeed/internal/storage"
)

type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) Sync(ctx context.Context, source string) (models.SyncResult, error) {
	args := m.Called(ctx, source)
	return args.Get(0).(models.SyncResult), args.Error(1)
}

func (m *MockSyncService) Configured(source models.Source) bool {
	return m.Called(source).Bool(0)
}

type MockSeedService struct {
	mock.Mock
}

func (m *MockSeedService) Seed(ctx context.Context) (models.SeedReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.SeedReport), args.Error(1)
}

func TestSchedulerService_RunScheduledSync(t *testing.T) {
	ctx := context.Background()
	okResult := func(source models.Source, n int) models.SyncResult {
		return models.SyncResult{Source: source, Status: models.StatusSuccess, Count: n}
	}

	t.Run("Оба источника настроены, данные есть", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("Count", mock.Anything, models.SourceInstagram).Return(5, nil)
		repo.On("Count", mock.Anything, models.SourceLinkedIn).Return(4, nil)
		syncSvc := new(MockSyncService)
		syncSvc.On("Configured", mock.Anything).Return(true)
		syncSvc.On("Sync", mock.Anything, "instagram").Return(okResult(models.SourceInstagram, 5), nil)
		syncSvc.On("Sync", mock.Anything, "linkedin").Return(okResult(models.SourceLinkedIn, 4), nil)
		seedSvc := new(MockSeedService)

		svc := NewSchedulerService(repo, syncSvc, seedSvc, logging.NewNop())
		report := svc.RunScheduledSync(ctx)

		assert.True(t, report.Success)
		assert.False(t, report.Seeded)
		assert.Equal(t, 5, report.Instagram.Count)
		assert.Equal(t, 4, report.LinkedIn.Count)
		seedSvc.AssertNotCalled(t, "Seed", mock.Anything)
		syncSvc.AssertExpectations(t)
	})

	t.Run("Ненастроенный источник пропускается, пустая таблица заполняется", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("Count", mock.Anything, models.SourceInstagram).Return(5, nil)
		repo.On("Count", mock.Anything, models.SourceLinkedIn).Return(0, nil)
		syncSvc := new(MockSyncService)
		syncSvc.On("Configured", models.SourceInstagram).Return(true)
		syncSvc.On("Configured", models.SourceLinkedIn).Return(false)
		syncSvc.On("Sync", mock.Anything, "instagram").Return(okResult(models.SourceInstagram, 5), nil)
		seedSvc := new(MockSeedService)
		seedSvc.On("Seed", mock.Anything).Return(models.SeedReport{InstagramCount: 4, LinkedInCount: 3}, nil)

		svc := NewSchedulerService(repo, syncSvc, seedSvc, logging.NewNop())
		report := svc.RunScheduledSync(ctx)

		assert.True(t, report.Success)
		assert.True(t, report.Seeded)
		assert.Equal(t, models.StatusSkipped, report.LinkedIn.Status)
		syncSvc.AssertNotCalled(t, "Sync", mock.Anything, "linkedin")
		seedSvc.AssertExpectations(t)
	})

	t.Run("Ошибка синхронизации попадает в отчет", func(t *testing.T) {
		failed := models.SyncResult{Source: models.SourceInstagram, Status: models.StatusError, Message: "boom"}
		repo := new(MockPostRepository)
		repo.On("Count", mock.Anything, mock.Anything).Return(2, nil)
		syncSvc := new(MockSyncService)
		syncSvc.On("Configured", mock.Anything).Return(true)
		syncSvc.On("Sync", mock.Anything, "instagram").Return(failed, &ProviderError{Source: models.SourceInstagram, Err: errors.New("boom")})
		syncSvc.On("Sync", mock.Anything, "linkedin").Return(okResult(models.SourceLinkedIn, 2), nil)

		svc := NewSchedulerService(repo, syncSvc, new(MockSeedService), logging.NewNop())
		report := svc.RunScheduledSync(ctx)

		assert.True(t, report.Success)
		assert.Equal(t, models.StatusError, report.Instagram.Status)
		assert.Equal(t, models.StatusSuccess, report.LinkedIn.Status)
	})

	t.Run("Ошибка заполнения", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("Count", mock.Anything, models.SourceInstagram).Return(0, nil)
		syncSvc := new(MockSyncService)
		syncSvc.On("Configured", mock.Anything).Return(false)
		seedSvc := new(MockSeedService)
		seedSvc.On("Seed", mock.Anything).Return(models.SeedReport{}, errors.New("db down"))

		svc := NewSchedulerService(repo, syncSvc, seedSvc, logging.NewNop())
		report := svc.RunScheduledSync(ctx)

		assert.False(t, report.Success)
		assert.False(t, report.Seeded)
		assert.Equal(t, models.StatusSkipped, report.Instagram.Status)
		assert.Equal(t, models.StatusSkipped, report.LinkedIn.Status)
	})

	t.Run("Ошибка подсчета", func(t *testing.T) {
		repo := new(MockPostRepository)
		repo.On("Count", mock.Anything, models.SourceInstagram).Return(0, errors.New("db down"))
		syncSvc := new(MockSyncService)
		syncSvc.On("Configured", mock.Anything).Return(false)
		seedSvc := new(MockSeedService)

		svc := NewSchedulerService(repo, syncSvc, seedSvc, logging.NewNop())
		report := svc.RunScheduledSync(ctx)

		assert.False(t, report.Success)
		seedSvc.AssertNotCalled(t, "Seed", mock.Anything)
	})
}

func TestSchedulerService_LinkedInWithoutOrganizationIsSkipped(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("Count", mock.Anything, mock.Anything).Return(3, nil)

	linkedIn := provider.NewLinkedInClient(
		config.LinkedIn{ClientID: "id", ClientSecret: "secret"},
		provider.NewHTTPClient(time.Second),
	)
	providers := map[models.Source]provider.Client{
		models.SourceInstagram: newMockProvider(models.SourceInstagram, false),
		models.SourceLinkedIn:  linkedIn,
	}
	syncSvc := NewSyncService(repo, providers, storage.NopArchive{}, metrics.New(), logging.NewNop(), 25)
	seedSvc := new(MockSeedService)

	svc := NewSchedulerService(repo, syncSvc, seedSvc, logging.NewNop())
	report := svc.RunScheduledSync(context.Background())

	assert.True(t, report.Success)
	assert.Equal(t, models.StatusSkipped, report.LinkedIn.Status)
	assert.Equal(t, models.StatusSkipped, report.Instagram.Status)
	repo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything, mock.Anything)
	seedSvc.AssertNotCalled(t, "Seed", mock.Anything)
}
