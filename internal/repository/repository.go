package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"socialfeed/internal/models"
)

var ErrUnknownSource = errors.New("неизвестный источник")

type PostRepository interface {
	Count(ctx context.Context, source models.Source) (int, error)
	// ReplaceAll - удаление всех строк источника и вставка постов в одной транзакции
	ReplaceAll(ctx context.Context, source models.Source, posts []models.Post) error
	List(ctx context.Context, source models.Source, limit int) ([]models.Post, error)
	DeleteByPostID(ctx context.Context, source models.Source, postID string) (int64, error)
	// InsertBatch - строки с существующим post_id пропускаются
	InsertBatch(ctx context.Context, source models.Source, posts []models.Post) error
}

type Repository struct {
	Post PostRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Post: NewPostRepository(db),
	}
}
