package handlers

import (
	"net/http"
	"time"

	"github.com/Dosada05/futbol5/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
	now              func() time.Time
}

func NewDashboardHandler(s services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: s, now: time.Now}
}

// Stats
// @Summary Site statistics
// @Description Match and player counts, top player and next match.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Router /api/dashboard [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetStats(r.Context(), h.now())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, stats, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
