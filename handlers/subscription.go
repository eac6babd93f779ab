package handlers

import (
	"net/http"

	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/services"
)

// SubscriptionHandler, abonelik endpoint'lerini yönetir.
type SubscriptionHandler struct {
	subscriptionService services.SubscriptionService
}

// NewSubscriptionHandler, constructor.
func NewSubscriptionHandler(subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Toggle godoc
// POST /api/v1/subscriptions/{channelId}
// Abonelik yoksa ekler, varsa kaldırır. Yeni durum + güncel abone
// sayısı response'ta döner.
func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	result, err := h.subscriptionService.Toggle(r.Context(), user.ID, r.PathValue("channelId"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, result, "subscription toggled")
}

// ListSubscribers godoc
// GET /api/v1/subscriptions/{channelId}/subscribers
func (h *SubscriptionHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.subscriptionService.ListSubscribers(r.Context(), r.PathValue("channelId"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, subscribers, "channel subscribers")
}

// ListSubscribed godoc
// GET /api/v1/subscriptions/me
// Giriş yapmış kullanıcının abone olduğu kanallar.
func (h *SubscriptionHandler) ListSubscribed(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	channels, err := h.subscriptionService.ListSubscribedChannels(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, channels, "subscribed channels")
}
