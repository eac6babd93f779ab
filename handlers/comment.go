package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/pkg/ratelimit"
	"github.com/akinalp/playtube/services"
)

// CommentHandler, yorum endpoint'lerini yönetir.
type CommentHandler struct {
	commentService services.CommentService
	commentLimiter *ratelimit.CommentRateLimiter
}

// NewCommentHandler, constructor.
// commentLimiter: spam koruması. nil ise rate limiting devre dışı kalır.
func NewCommentHandler(commentService services.CommentService, commentLimiter *ratelimit.CommentRateLimiter) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		commentLimiter: commentLimiter,
	}
}

// Create godoc
// POST /api/v1/videos/{id}/comments
// Body: { "content": "..." }
//
// Rate limiting: kullanıcı bazlı — kısa zamanda çok yorum yazan
// kullanıcı cooldown'a girer ve 429 alır.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if h.commentLimiter != nil && !h.commentLimiter.Allow(user.ID) {
		cooldown := h.commentLimiter.CooldownSeconds(user.ID)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", cooldown))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
			fmt.Sprintf("you are commenting too fast, try again in %d seconds", cooldown))
		return
	}

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.commentService.Create(r.Context(), user.ID, r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, comment, "comment added")
}

// List godoc
// GET /api/v1/videos/{id}/comments?page=&limit=
// Opsiyonel auth — giriş yapmış izleyici için is_liked/is_disliked dolar.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	comments, err := h.commentService.ListByVideo(r.Context(), r.PathValue("id"), UserIDFromContext(r), page, limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, comments, "comments")
}

// Update godoc
// PATCH /api/v1/comments/{id}
// Body: { "content": "..." }
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.commentService.Update(r.Context(), user.ID, r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, comment, "comment updated")
}

// Delete godoc
// DELETE /api/v1/comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.commentService.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, nil, "comment deleted")
}
