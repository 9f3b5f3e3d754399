package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"socialfeed/internal/config"
	"socialfeed/internal/models"
)

// Archive - копия каждого успешного ответа провайдера
type Archive interface {
	SaveSnapshot(ctx context.Context, source models.Source, posts []models.Post) (string, error)
}

type snapshot struct {
	Source    models.Source `json:"source"`
	FetchedAt time.Time     `json:"fetchedAt"`
	Count     int           `json:"count"`
	Posts     []models.Post `json:"posts"`
}

type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64,
		opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type MinIOArchive struct {
	client objectPutter
	bucket string
	now    func() time.Time
}

func NewMinIOArchive(ctx context.Context, cfg config.MinIO) (*MinIOArchive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации MinIO: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки бакета %s: %w", cfg.BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("ошибка создания бакета %s: %w", cfg.BucketName, err)
		}
	}

	return &MinIOArchive{client: client, bucket: cfg.BucketName, now: time.Now}, nil
}

func (m *MinIOArchive) SaveSnapshot(ctx context.Context, source models.Source, posts []models.Post) (string, error) {
	now := m.now().UTC()

	data, err := json.Marshal(snapshot{Source: source, FetchedAt: now, Count: len(posts), Posts: posts})
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации снимка: %w", err)
	}

	objectName := fmt.Sprintf("snapshots/%s/%d/%02d/%s-%s.json",
		source,
		now.Year(),
		now.Month(),
		now.Format("20060102T150405Z"),
		uuid.New().String())

	_, err = m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType: "application/json",
			UserMetadata: map[string]string{
				"source":     string(source),
				"post-count": fmt.Sprintf("%d", len(posts)),
			},
		})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки снимка в MinIO: %w", err)
	}

	return objectName, nil
}

// NopArchive - используется, когда MinIO не настроен
type NopArchive struct{}

func (NopArchive) SaveSnapshot(context.Context, models.Source, []models.Post) (string, error) {
	return "", nil
}
