package test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialfeed/internal/config"
	handlers "socialfeed/internal/handler"
	"socialfeed/internal/scheduler"
)

func TestHealthHandler(t *testing.T) {
	cfg := &config.Config{
		Instagram: config.Instagram{AccessToken: "token", UserID: "42"},
	}

	t.Run("База данных доступна", func(t *testing.T) {
		h, m := newTestHandlers(cfg)
		m.db.On("HealthCheck").Return(nil)

		rr := httptest.NewRecorder()
		h.HealthHandler(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)

		var response handlers.HealthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "ok", response.Status)
		assert.True(t, response.Providers["instagram"])
		assert.False(t, response.Providers["linkedin"])
	})

	t.Run("База данных недоступна", func(t *testing.T) {
		h, m := newTestHandlers(cfg)
		m.db.On("HealthCheck").Return(errors.New("connection refused"))

		rr := httptest.NewRecorder()
		h.HealthHandler(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Contains(t, rr.Body.String(), "degraded")
	})
}

func TestHealthHandler_LinkedInWithoutOrganization(t *testing.T) {
	h, m := newTestHandlers(&config.Config{
		LinkedIn: config.LinkedIn{ClientID: "id", ClientSecret: "secret"},
	})
	m.db.On("HealthCheck").Return(nil)

	rr := httptest.NewRecorder()
	h.HealthHandler(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	var response handlers.HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.False(t, response.Providers["linkedin"])
}

func TestHealthHandler_Jobs(t *testing.T) {
	next := time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)

	h, m := newTestHandlers(nil)
	m.db.On("HealthCheck").Return(nil)
	jobs := new(MockJobLister)
	jobs.On("ListJobs").Return([]scheduler.JobInfo{{Name: "scheduled-sync", NextRun: next}})
	h.Jobs = jobs

	rr := httptest.NewRecorder()
	h.HealthHandler(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	var response handlers.HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	require.Len(t, response.Jobs, 1)
	assert.Equal(t, "scheduled-sync", response.Jobs[0].Name)
	assert.True(t, next.Equal(response.Jobs[0].NextRun))
	jobs.AssertExpectations(t)
}

func TestHomeHandler(t *testing.T) {
	h, _ := newTestHandlers(nil)

	rr := httptest.NewRecorder()
	h.HomeHandler(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/api/sync")
}
