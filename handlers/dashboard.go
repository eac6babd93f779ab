package handlers

import (
	"net/http"
	"strconv"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/services"
)

// DashboardHandler, kanal sahibi istatistik paneli endpoint'i.
type DashboardHandler struct {
	dashboardService services.DashboardService
}

// NewDashboardHandler, constructor.
func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats godoc
// GET /api/v1/dashboard/stats
// Giriş yapmış kullanıcının kendi kanal istatistikleri.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	stats, err := h.dashboardService.GetStats(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, stats, "channel stats")
}

// Videos godoc
// GET /api/v1/dashboard/videos?query=&sort_by=&sort_order=&page=&limit=
// Kanal sahibinin tüm videoları — yayında olmayanlar dahil.
func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	q := models.VideoListQuery{
		Query:     r.URL.Query().Get("query"),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}
	q.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	q.Normalize()

	page, err := h.dashboardService.ListVideos(r.Context(), user.ID, q)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, page, "channel videos")
}
