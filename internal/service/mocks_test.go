package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"socialfeed/internal/models"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Count(ctx context.Context, source models.Source) (int, error) {
	args := m.Called(ctx, source)
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) ReplaceAll(ctx context.Context, source models.Source, posts []models.Post) error {
	args := m.Called(ctx, source, posts)
	return args.Error(0)
}

func (m *MockPostRepository) List(ctx context.Context, source models.Source, limit int) ([]models.Post, error) {
	args := m.Called(ctx, source, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) DeleteByPostID(ctx context.Context, source models.Source, postID string) (int64, error) {
	args := m.Called(ctx, source, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) InsertBatch(ctx context.Context, source models.Source, posts []models.Post) error {
	args := m.Called(ctx, source, posts)
	return args.Error(0)
}

type MockProvider struct {
	mock.Mock
	source     models.Source
	configured bool
}

func newMockProvider(source models.Source, configured bool) *MockProvider {
	return &MockProvider{source: source, configured: configured}
}

func (m *MockProvider) Source() models.Source { return m.source }
func (m *MockProvider) Configured() bool      { return m.configured }

func (m *MockProvider) FetchPosts(ctx context.Context, limit int) ([]models.Post, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) SaveSnapshot(ctx context.Context, source models.Source, posts []models.Post) (string, error) {
	args := m.Called(ctx, source, posts)
	return args.String(0), args.Error(1)
}
