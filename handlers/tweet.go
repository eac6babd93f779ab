package handlers

import (
	"net/http"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/services"
)

// TweetHandler, kanal topluluk gönderisi endpoint'lerini yönetir.
type TweetHandler struct {
	tweetService services.TweetService
}

// NewTweetHandler, constructor.
func NewTweetHandler(tweetService services.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// Create godoc
// POST /api/v1/tweets
// multipart/form-data: content, image? (file)
func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := r.ParseMultipartForm(maxImageFormMemory); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := models.CreateTweetRequest{Content: r.FormValue("content")}

	// Opsiyonel görsel
	imageFile, imageHeader, err := r.FormFile("image")
	if err == nil {
		defer imageFile.Close()
	} else {
		imageFile, imageHeader = nil, nil
	}

	tweet, err := h.tweetService.Create(r.Context(), user.ID, &req, imageFile, imageHeader)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, tweet, "tweet created")
}

// ListByChannel godoc
// GET /api/v1/channels/{channelId}/tweets
// Opsiyonel auth — giriş yapmış ziyaretçi için is_liked/is_disliked dolar.
func (h *TweetHandler) ListByChannel(w http.ResponseWriter, r *http.Request) {
	tweets, err := h.tweetService.ListByOwner(r.Context(), r.PathValue("channelId"), UserIDFromContext(r))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, tweets, "tweets")
}

// Update godoc
// PATCH /api/v1/tweets/{id}
// multipart/form-data: content, image? (file)
func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := r.ParseMultipartForm(maxImageFormMemory); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := models.UpdateTweetRequest{Content: r.FormValue("content")}

	// Opsiyonel yeni görsel — verilirse eskisinin yerini alır
	imageFile, imageHeader, err := r.FormFile("image")
	if err == nil {
		defer imageFile.Close()
	} else {
		imageFile, imageHeader = nil, nil
	}

	tweet, err := h.tweetService.Update(r.Context(), user.ID, r.PathValue("id"), &req, imageFile, imageHeader)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, tweet, "tweet updated")
}

// Delete godoc
// DELETE /api/v1/tweets/{id}
func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.tweetService.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, nil, "tweet deleted")
}
