package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"socialfeed/internal/models"
)

var ErrNotConfigured = errors.New("учетные данные провайдера не настроены")

// StatusError - провайдер ответил статусом вне 2xx
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("провайдер вернул статус %d", e.StatusCode)
	}
	return fmt.Sprintf("провайдер вернул статус %d: %s", e.StatusCode, e.Message)
}

type Client interface {
	Source() models.Source
	Configured() bool
	FetchPosts(ctx context.Context, limit int) ([]models.Post, error)
}

func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: 5 * time.Second,
			MaxIdleConns:        20,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// doJSON - выполняет запрос и декодирует тело ответа 2xx в out.
// errorMessage достает сообщение провайдера из тела ответа с ошибкой
func doJSON(client *http.Client, req *http.Request, out interface{}, errorMessage func([]byte) string) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка запроса к провайдеру: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа провайдера: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("некорректный ответ провайдера: %w", err)
	}

	return nil
}

func truncate(posts []models.Post, limit int) []models.Post {
	if limit > 0 && len(posts) > limit {
		return posts[:limit]
	}
	return posts
}
