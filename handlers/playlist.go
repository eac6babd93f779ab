package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/services"
)

// PlaylistHandler, playlist endpoint'lerini yönetir.
type PlaylistHandler struct {
	playlistService services.PlaylistService
}

// NewPlaylistHandler, constructor.
func NewPlaylistHandler(playlistService services.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create godoc
// POST /api/v1/playlists
// Body: { "name": "...", "description"?: "..." }
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	playlist, err := h.playlistService.Create(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, playlist, "playlist created")
}

// Get godoc
// GET /api/v1/playlists/{id}
// Playlist videolarıyla birlikte döner.
func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlist, err := h.playlistService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, playlist, "playlist")
}

// ListMine godoc
// GET /api/v1/playlists/me
func (h *PlaylistHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	playlists, err := h.playlistService.ListByOwner(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, playlists, "playlists")
}

// Update godoc
// PATCH /api/v1/playlists/{id}
// Body: { "name"?, "description"? }
func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.UpdatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	playlist, err := h.playlistService.Update(r.Context(), user.ID, r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, playlist, "playlist updated")
}

// Delete godoc
// DELETE /api/v1/playlists/{id}
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.playlistService.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, nil, "playlist deleted")
}

// AddVideo godoc
// POST /api/v1/playlists/{id}/videos/{videoId}
func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.playlistService.AddVideo(r.Context(), user.ID, r.PathValue("id"), r.PathValue("videoId")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, nil, "video added to playlist")
}

// RemoveVideo godoc
// DELETE /api/v1/playlists/{id}/videos/{videoId}
func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.playlistService.RemoveVideo(r.Context(), user.ID, r.PathValue("id"), r.PathValue("videoId")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, nil, "video removed from playlist")
}
