package handlers

import (
	"net/http"
	"strconv"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/services"
)

// maxVideoFormMemory, video yükleme formunun bellek limiti.
// Video dosyasının kendisi bu limiti aşınca geçici dosyaya yazılır.
const maxVideoFormMemory = 64 << 20 // 64MB

// VideoHandler, video endpoint'lerini yönetir.
type VideoHandler struct {
	videoService     services.VideoService
	dashboardService services.DashboardService
}

// NewVideoHandler, constructor.
func NewVideoHandler(videoService services.VideoService, dashboardService services.DashboardService) *VideoHandler {
	return &VideoHandler{
		videoService:     videoService,
		dashboardService: dashboardService,
	}
}

// Publish godoc
// POST /api/v1/videos
//
// multipart/form-data:
//   - title, description, category_id, duration (text; duration saniye cinsinden)
//   - video (file, zorunlu)
//   - thumbnail (file, zorunlu)
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := r.ParseMultipartForm(maxVideoFormMemory); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	duration, _ := strconv.ParseFloat(r.FormValue("duration"), 64)
	req := models.PublishVideoRequest{
		Title:           r.FormValue("title"),
		Description:     r.FormValue("description"),
		CategoryID:      r.FormValue("category_id"),
		DurationSeconds: duration,
	}

	videoFile, videoHeader, err := r.FormFile("video")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "video file is required")
		return
	}
	defer videoFile.Close()

	thumbFile, thumbHeader, err := r.FormFile("thumbnail")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "thumbnail file is required")
		return
	}
	defer thumbFile.Close()

	video, err := h.videoService.Publish(r.Context(), user.ID, &req, videoFile, videoHeader, thumbFile, thumbHeader)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	// Yeni video kanal istatistiklerini değiştirdi
	h.dashboardService.InvalidateStats(user.ID)

	pkg.JSON(w, http.StatusCreated, video, "video published")
}

// List godoc
// GET /api/v1/videos?query=&owner_id=&sort_by=&sort_order=&page=&limit=
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	q := models.VideoListQuery{
		Query:     r.URL.Query().Get("query"),
		OwnerID:   r.URL.Query().Get("owner_id"),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}
	q.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	q.Normalize()

	page, err := h.videoService.List(r.Context(), q)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, page, "videos")
}

// Get godoc
// GET /api/v1/videos/{id}
// Opsiyonel auth — her çağrı izlenme sayar, giriş yapmış izleyicinin
// geçmişine yazılır.
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	video, err := h.videoService.GetByID(r.Context(), r.PathValue("id"), UserIDFromContext(r))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, video, "video")
}

// Update godoc
// PATCH /api/v1/videos/{id}
// multipart/form-data: title?, description?, category_id?, thumbnail? (file)
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := r.ParseMultipartForm(maxImageFormMemory); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var req models.UpdateVideoRequest
	if v := r.FormValue("title"); r.Form.Has("title") {
		req.Title = &v
	}
	if v := r.FormValue("description"); r.Form.Has("description") {
		req.Description = &v
	}
	if v := r.FormValue("category_id"); r.Form.Has("category_id") {
		req.CategoryID = &v
	}

	// Opsiyonel yeni thumbnail
	thumbFile, thumbHeader, err := r.FormFile("thumbnail")
	if err == nil {
		defer thumbFile.Close()
	} else {
		thumbFile, thumbHeader = nil, nil
	}

	video, err := h.videoService.Update(r.Context(), user.ID, r.PathValue("id"), &req, thumbFile, thumbHeader)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, video, "video updated")
}

// Delete godoc
// DELETE /api/v1/videos/{id}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.videoService.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	h.dashboardService.InvalidateStats(user.ID)
	pkg.JSON(w, http.StatusOK, nil, "video deleted")
}

// TogglePublish godoc
// PATCH /api/v1/videos/{id}/toggle-publish
func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	published, err := h.videoService.TogglePublish(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]bool{"is_published": published}, "publish status toggled")
}

// ListLiked godoc
// GET /api/v1/videos/liked
func (h *VideoHandler) ListLiked(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	videos, err := h.videoService.ListLikedVideos(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, videos, "liked videos")
}
