package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/services"
)

// ReactionHandler, like/dislike endpoint'lerini yönetir.
type ReactionHandler struct {
	reactionService services.ReactionService
}

// NewReactionHandler, constructor.
func NewReactionHandler(reactionService services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// Toggle godoc
// POST /api/v1/likes/{target}/{id}
// Body: { "kind": "like" | "dislike" }
//
// target: "video", "comment" veya "tweet".
// Aynı kind ikinci kez gönderilirse reaksiyon kaldırılır (toggle),
// karşı kind gönderilirse reaksiyon değiştirilir.
func (h *ReactionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	target, err := models.ParseReactionTarget(r.PathValue("target"))
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Kind models.ReactionKind `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.reactionService.Toggle(r.Context(), user.ID, target, r.PathValue("id"), req.Kind)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, result, "reaction toggled")
}
