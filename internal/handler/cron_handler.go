package handlers

import (
	"net/http"
)

// CronSync - триггер внешнего планировщика. Всегда отвечает 200,
// ошибки по источникам передаются в отчете
func (h *Handlers) CronSync(w http.ResponseWriter, r *http.Request) {
	report := h.SchedulerService.RunScheduledSync(r.Context())
	WriteJSON(w, report, http.StatusOK)
}
