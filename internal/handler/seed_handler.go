package handlers

import (
	"net/http"
)

type SeedResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	InstagramCount int    `json:"instagramCount"`
	LinkedInCount  int    `json:"linkedinCount"`
}

func (h *Handlers) Seed(w http.ResponseWriter, r *http.Request) {
	report, err := h.SeedService.Seed(r.Context())
	if err != nil {
		h.Logger.WithError(err).Error("Ошибка при добавлении тестовых данных")
		WriteJSON(w, SeedResponse{Success: false, Message: err.Error()}, http.StatusInternalServerError)
		return
	}

	WriteJSON(w, SeedResponse{
		Success:        true,
		Message:        "Тестовые данные успешно добавлены",
		InstagramCount: report.InstagramCount,
		LinkedInCount:  report.LinkedInCount,
	}, http.StatusOK)
}
