package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/services"
)

// UserHandler, kullanıcı ve kanal endpoint'lerini yönetir.
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler, constructor.
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me godoc
// GET /api/v1/users/me
// Auth middleware gerektirir — context'te user bilgisi olur.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	pkg.JSON(w, http.StatusOK, user, "current user")
}

// GetChannel godoc
// GET /api/v1/channels/{username}
// Opsiyonel auth — giriş yapmış ziyaretçi için is_subscribed hesaplanır.
func (h *UserHandler) GetChannel(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "username is required")
		return
	}

	profile, err := h.userService.GetChannelProfile(r.Context(), username, UserIDFromContext(r))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, profile, "channel profile")
}

// UpdateDetails godoc
// PATCH /api/v1/users/me
// Body: { "full_name"?, "email"?, "username"? }
func (h *UserHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.userService.UpdateDetails(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, updated, "account details updated")
}

// UpdateAvatar godoc
// PATCH /api/v1/users/me/avatar
// multipart/form-data: avatar (file)
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := r.ParseMultipartForm(maxImageFormMemory); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	updated, err := h.userService.UpdateAvatar(r.Context(), user.ID, file, header)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, updated, "avatar updated")
}

// UpdateCover godoc
// PATCH /api/v1/users/me/cover
// multipart/form-data: cover (file)
func (h *UserHandler) UpdateCover(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := r.ParseMultipartForm(maxImageFormMemory); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "cover file is required")
		return
	}
	defer file.Close()

	updated, err := h.userService.UpdateCover(r.Context(), user.ID, file, header)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, updated, "cover image updated")
}

// GetWatchHistory godoc
// GET /api/v1/users/me/history
func (h *UserHandler) GetWatchHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	history, err := h.userService.GetWatchHistory(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, history, "watch history")
}
