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
	"unicode/utf8"

	"socialfeed/internal/config"
	"socialfeed/internal/models"
)

const (
	linkedInVersion      = "202401"
	linkedInPermalink    = "https://www.linkedin.com/feed/update/"
	linkedInTitleMaxRune = 100
)

type LinkedInClient struct {
	cfg    config.LinkedIn
	client *http.Client
}

type linkedInToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type linkedInPost struct {
	ID          string `json:"id"`
	Commentary  string `json:"commentary"`
	PublishedAt int64  `json:"publishedAt"`
	CreatedAt   int64  `json:"createdAt"`
	Content     struct {
		Article struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"article"`
	} `json:"content"`
}

type linkedInResponse struct {
	Elements []linkedInPost `json:"elements"`
}

type linkedInError struct {
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func NewLinkedInClient(cfg config.LinkedIn, client *http.Client) *LinkedInClient {
	return &LinkedInClient{cfg: cfg, client: client}
}

func (c *LinkedInClient) Source() models.Source {
	return models.SourceLinkedIn
}

func (c *LinkedInClient) Configured() bool {
	return c.cfg.Configured()
}

func (c *LinkedInClient) FetchPosts(ctx context.Context, limit int) ([]models.Post, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("q", "author")
	query.Set("author", "urn:li:organization:"+c.cfg.OrganizationID)
	query.Set("sortBy", "LAST_MODIFIED")
	if limit > 0 {
		query.Set("count", strconv.Itoa(limit))
	}

	endpoint := strings.TrimSuffix(c.cfg.APIBase, "/") + "/rest/posts?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("LinkedIn-Version", linkedInVersion)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	var resp linkedInResponse
	if err := doJSON(c.client, req, &resp, linkedInErrorMessage); err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		posts = append(posts, mapLinkedInPost(el))
	}

	return truncate(posts, limit), nil
}

// accessToken - получение токена по client credentials при каждом вызове, без кэширования
func (c *LinkedInClient) accessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token linkedInToken
	if err := doJSON(c.client, req, &token, linkedInErrorMessage); err != nil {
		return "", fmt.Errorf("ошибка получения токена LinkedIn: %w", err)
	}

	if token.AccessToken == "" {
		return "", fmt.Errorf("LinkedIn не вернул access_token")
	}

	return token.AccessToken, nil
}

func mapLinkedInPost(el linkedInPost) models.Post {
	title := el.Content.Article.Title
	summary := el.Content.Article.Description

	if title == "" {
		title = firstLine(el.Commentary)
	}
	if summary == "" {
		summary = el.Commentary
	}

	millis := el.PublishedAt
	if millis == 0 {
		millis = el.CreatedAt
	}

	return models.Post{
		PostID:    el.ID,
		Permalink: linkedInPermalink + el.ID,
		Title:     title,
		Summary:   summary,
		Timestamp: time.UnixMilli(millis).UTC(),
	}
}

func firstLine(text string) string {
	line := strings.TrimSpace(strings.SplitN(text, "\n", 2)[0])
	if utf8.RuneCountInString(line) <= linkedInTitleMaxRune {
		return line
	}
	runes := []rune(line)
	return string(runes[:linkedInTitleMaxRune]) + "…"
}

func linkedInErrorMessage(body []byte) string {
	var e linkedInError
	if err := json.Unmarshal(body, &e); err == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.ErrorDescription != "" {
			return e.ErrorDescription
		}
	}
	return strings.TrimSpace(string(body))
}
