package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"socialfeed/internal/models"
	"socialfeed/internal/scheduler"
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

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) Posts(ctx context.Context, source string) (models.FeedResult, error) {
	args := m.Called(ctx, source)
	return args.Get(0).(models.FeedResult), args.Error(1)
}

type MockSchedulerService struct {
	mock.Mock
}

func (m *MockSchedulerService) RunScheduledSync(ctx context.Context) models.ScheduledSyncReport {
	return m.Called(ctx).Get(0).(models.ScheduledSyncReport)
}

type MockDB struct {
	mock.Mock
}

func (m *MockDB) CloseDB() error {
	return m.Called().Error(0)
}

func (m *MockDB) RunMigrations(migrationFilePath string) error {
	return m.Called(migrationFilePath).Error(0)
}

func (m *MockDB) HealthCheck() error {
	return m.Called().Error(0)
}

type MockJobLister struct {
	mock.Mock
}

func (m *MockJobLister) ListJobs() []scheduler.JobInfo {
	return m.Called().Get(0).([]scheduler.JobInfo)
}
