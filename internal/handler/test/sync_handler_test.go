package test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialfeed/internal/models"
	"socialfeed/internal/provider"
	"socialfeed/internal/service"
)

func TestSyncSource(t *testing.T) {
	tests := []struct {
		name                string
		body                string
		mockSetup           func(*MockSyncService)
		expectedStatus      int
		expectedStatusField models.SyncStatus
	}{
		{
			name: "Успешная синхронизация",
			body: `{"source":"instagram"}`,
			mockSetup: func(s *MockSyncService) {
				s.On("Sync", mock.Anything, "instagram").Return(models.SyncResult{
					Source: models.SourceInstagram, Status: models.StatusSuccess, Count: 5,
				}, nil)
			},
			expectedStatus:      http.StatusOK,
			expectedStatusField: models.StatusSuccess,
		},
		{
			name: "Ошибка провайдера возвращает 200",
			body: `{"source":"linkedin"}`,
			mockSetup: func(s *MockSyncService) {
				s.On("Sync", mock.Anything, "linkedin").Return(
					models.SyncResult{Source: models.SourceLinkedIn, Status: models.StatusError, Message: "401"},
					&service.ProviderError{Source: models.SourceLinkedIn, Err: &provider.StatusError{StatusCode: 401}},
				)
			},
			expectedStatus:      http.StatusOK,
			expectedStatusField: models.StatusError,
		},
		{
			name: "Недопустимый источник возвращает 500",
			body: `{"source":"carrierpigeon"}`,
			mockSetup: func(s *MockSyncService) {
				s.On("Sync", mock.Anything, "carrierpigeon").Return(
					models.SyncResult{Source: "carrierpigeon", Status: models.StatusError, Message: "недопустимый источник"},
					&service.InvalidSourceError{Value: "carrierpigeon"},
				)
			},
			expectedStatus:      http.StatusInternalServerError,
			expectedStatusField: models.StatusError,
		},
		{
			name: "Не настроены учетные данные",
			body: `{"source":"instagram"}`,
			mockSetup: func(s *MockSyncService) {
				s.On("Sync", mock.Anything, "instagram").Return(
					models.SyncResult{Source: models.SourceInstagram, Status: models.StatusError},
					&service.ConfigurationError{Source: models.SourceInstagram, Err: provider.ErrNotConfigured},
				)
			},
			expectedStatus:      http.StatusInternalServerError,
			expectedStatusField: models.StatusError,
		},
		{
			name: "Ошибка хранилища",
			body: `{"source":"instagram"}`,
			mockSetup: func(s *MockSyncService) {
				s.On("Sync", mock.Anything, "instagram").Return(
					models.SyncResult{Source: models.SourceInstagram, Status: models.StatusError},
					&service.StoreError{Op: "replace", Err: errors.New("db down")},
				)
			},
			expectedStatus:      http.StatusInternalServerError,
			expectedStatusField: models.StatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandlers(nil)
			tt.mockSetup(m.sync)

			req := httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			h.SyncSource(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
			assert.Equal(t, string(tt.expectedStatusField), response["status"])
			if tt.expectedStatus == http.StatusInternalServerError {
				assert.NotEmpty(t, response["error"])
			}

			m.sync.AssertExpectations(t)
		})
	}
}

func TestSyncSource_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "Некорректный JSON", body: `{"source":`},
		{name: "Пустой source", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandlers(nil)

			rr := httptest.NewRecorder()
			h.SyncSource(rr, httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewBufferString(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			m.sync.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything)
		})
	}
}
