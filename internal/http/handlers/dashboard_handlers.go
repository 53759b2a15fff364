package handlers

import (
	"net/http"
)

func (h *Handlers) AdminDashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.Summary(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
