package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"socialfeed/internal/config"
	"socialfeed/internal/models"
)

const instagramFields = "id,caption,media_type,media_url,thumbnail_url,permalink,timestamp"

type InstagramClient struct {
	cfg    config.Instagram
	client *http.Client
}

type instagramMedia struct {
	ID           string `json:"id"`
	Caption      string `json:"caption"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Permalink    string `json:"permalink"`
	Timestamp    string `json:"timestamp"`
}

type instagramResponse struct {
	Data []instagramMedia `json:"data"`
}

type instagramError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewInstagramClient(cfg config.Instagram, client *http.Client) *InstagramClient {
	return &InstagramClient{cfg: cfg, client: client}
}

func (c *InstagramClient) Source() models.Source {
	return models.SourceInstagram
}

func (c *InstagramClient) Configured() bool {
	return c.cfg.Configured()
}

func (c *InstagramClient) FetchPosts(ctx context.Context, limit int) ([]models.Post, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	query := url.Values{}
	query.Set("fields", instagramFields)
	query.Set("access_token", c.cfg.AccessToken)
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	endpoint := fmt.Sprintf("%s/%s/media?%s",
		strings.TrimSuffix(c.cfg.APIBase, "/"),
		url.PathEscape(c.cfg.UserID),
		query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp instagramResponse
	if err := doJSON(c.client, req, &resp, instagramErrorMessage); err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0, len(resp.Data))
	for _, m := range resp.Data {
		ts, err := parseInstagramTime(m.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("некорректное время публикации %s: %w", m.ID, err)
		}

		imageURL := m.MediaURL
		if m.MediaType == "VIDEO" && m.ThumbnailURL != "" {
			imageURL = m.ThumbnailURL
		}

		posts = append(posts, models.Post{
			PostID:    m.ID,
			Permalink: m.Permalink,
			ImageURL:  imageURL,
			Caption:   m.Caption,
			Timestamp: ts,
		})
	}

	return truncate(posts, limit), nil
}

// Время в Graph API выглядит как 2024-05-01T12:00:00+0000
func parseInstagramTime(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04:05-0700", time.RFC3339} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("неизвестный формат времени %q", value)
}

func instagramErrorMessage(body []byte) string {
	var e instagramError
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return strings.TrimSpace(string(body))
}
