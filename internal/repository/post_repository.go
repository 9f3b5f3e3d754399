package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialfeed/internal/models"
)

type postTable struct {
	name    string
	columns []string
}

var postTables = map[models.Source]postTable{
	models.SourceInstagram: {
		name:    "instagram_posts",
		columns: []string{"id", "post_id", "permalink", "image_url", "caption", "timestamp"},
	},
	models.SourceLinkedIn: {
		name:    "linkedin_posts",
		columns: []string{"id", "post_id", "permalink", "title", "summary", "timestamp"},
	},
}

func (t postTable) insertQuery(onConflictSkip bool) string {
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (:%s)",
		t.name,
		strings.Join(t.columns, ", "),
		strings.Join(t.columns, ", :"),
	)
	if onConflictSkip {
		query += " ON CONFLICT (post_id) DO NOTHING"
	}
	return query
}

func (t postTable) selectQuery() string {
	return fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY timestamp DESC LIMIT $1",
		strings.Join(t.columns, ", "),
		t.name,
	)
}

func tableFor(source models.Source) (postTable, error) {
	t, ok := postTables[source]
	if !ok {
		return postTable{}, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
	return t, nil
}

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Count(ctx context.Context, source models.Source) (int, error) {
	t, err := tableFor(source)
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.GetContext(ctx, &count, fmt.Sprintf("SELECT COUNT(*) FROM %s", t.name)); err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте постов %s: %w", source, err)
	}

	return count, nil
}

func (r *PostRepositoryImpl) ReplaceAll(ctx context.Context, source models.Source, posts []models.Post) error {
	t, err := tableFor(source)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", t.name)); err != nil {
		return fmt.Errorf("ошибка при очистке постов %s: %w", source, err)
	}

	query := t.insertQuery(false)
	for _, post := range posts {
		if _, err := tx.NamedExecContext(ctx, query, withID(post)); err != nil {
			return fmt.Errorf("ошибка при сохранении поста %s: %w", post.PostID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) List(ctx context.Context, source models.Source, limit int) ([]models.Post, error) {
	t, err := tableFor(source)
	if err != nil {
		return nil, err
	}

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, t.selectQuery(), limit); err != nil {
		return nil, fmt.Errorf("ошибка при получении постов %s: %w", source, err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) DeleteByPostID(ctx context.Context, source models.Source, postID string) (int64, error) {
	t, err := tableFor(source)
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE post_id = $1", t.name), postID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	return rowsAffected, nil
}

func (r *PostRepositoryImpl) InsertBatch(ctx context.Context, source models.Source, posts []models.Post) error {
	t, err := tableFor(source)
	if err != nil {
		return err
	}

	query := t.insertQuery(true)
	for _, post := range posts {
		if _, err := r.db.NamedExecContext(ctx, query, withID(post)); err != nil {
			return fmt.Errorf("ошибка при создании поста %s: %w", post.PostID, err)
		}
	}

	return nil
}

func withID(post models.Post) models.Post {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	return post
}
