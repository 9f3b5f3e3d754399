package handlers

import (
	"net/http"

	"socialfeed/internal/scheduler"
)

func (h *Handlers) HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, map[string]interface{}{
		"service": "socialfeed",
		"endpoints": []string{
			"GET /api/instagram-posts",
			"GET /api/linkedin-posts",
			"GET /api/posts/{source}",
			"POST /api/sync",
			"POST /api/cron/sync",
			"POST /api/seed",
		},
	}, http.StatusOK)
}

type HealthResponse struct {
	Status    string              `json:"status"`
	Database  string              `json:"database"`
	Providers map[string]bool     `json:"providers"`
	Jobs      []scheduler.JobInfo `json:"jobs,omitempty"`
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:   "ok",
		Database: "ok",
		Providers: map[string]bool{
			"instagram": h.Cfg.Instagram.Configured(),
			"linkedin":  h.Cfg.LinkedIn.Configured(),
		},
	}

	if h.Jobs != nil {
		resp.Jobs = h.Jobs.ListJobs()
	}

	status := http.StatusOK
	if err := h.DB.HealthCheck(); err != nil {
		h.Logger.WithError(err).Warn("База данных недоступна")
		resp.Status = "degraded"
		resp.Database = err.Error()
		status = http.StatusServiceUnavailable
	}

	WriteJSON(w, resp, status)
}
