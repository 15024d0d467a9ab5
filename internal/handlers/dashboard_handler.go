package handlers

import (
	"net/http"

	"travel-backend/internal/services"
	"travel-backend/pkg/utils"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(s *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: s}
}

// GetDashboard always answers 200; a broken store yields a zeroed bundle
// rather than an error page on the console.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Service.GetDashboard(r.Context()))
}
