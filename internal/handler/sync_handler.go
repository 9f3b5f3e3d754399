package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"socialfeed/internal/models"
	"socialfeed/internal/service"
)

type SyncRequest struct {
	Source string `json:"source" validate:"required"`
}

type SyncResponse struct {
	models.SyncResult
	Error string `json:"error,omitempty"`
}

func (h *Handlers) SyncSource(w http.ResponseWriter, r *http.Request) {
	var req SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Поле source обязательно", http.StatusBadRequest)
		return
	}

	result, err := h.SyncService.Sync(r.Context(), req.Source)
	if err == nil {
		WriteJSON(w, SyncResponse{SyncResult: result}, http.StatusOK)
		return
	}

	// ошибка провайдера - обработанный исход, передается в теле ответа
	var providerErr *service.ProviderError
	if errors.As(err, &providerErr) {
		WriteJSON(w, SyncResponse{SyncResult: result}, http.StatusOK)
		return
	}

	WriteJSON(w, SyncResponse{SyncResult: result, Error: err.Error()}, http.StatusInternalServerError)
}
