// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Her handler, ihtiyaç duyduğu service interface'lerini constructor'dan alır.
// Handler'lar "thin" dir — sadece HTTP parse + service call + response write.
package main

import (
	"time"

	"github.com/akinalp/playtube/config"
	"github.com/akinalp/playtube/handlers"
	"github.com/akinalp/playtube/ws"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Video        *handlers.VideoHandler
	Comment      *handlers.CommentHandler
	Reaction     *handlers.ReactionHandler
	Subscription *handlers.SubscriptionHandler
	Playlist     *handlers.PlaylistHandler
	Tweet        *handlers.TweetHandler
	Notification *handlers.NotificationHandler
	Dashboard    *handlers.DashboardHandler
	Category     *handlers.CategoryHandler
	WS           *ws.Handler
}

// initHandlers, tüm handler'ları service ve rate limiter dependency'leri ile oluşturur.
func initHandlers(svcs *Services, limiters *RateLimiters, hub *ws.Hub, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth: handlers.NewAuthHandler(
			svcs.Auth, svcs.Media, limiters.Login,
			cfg.Server.IsProduction(),
			time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
			time.Duration(cfg.JWT.RefreshTokenExpiry)*24*time.Hour,
		),
		User:         handlers.NewUserHandler(svcs.User),
		Video:        handlers.NewVideoHandler(svcs.Video, svcs.Dashboard),
		Comment:      handlers.NewCommentHandler(svcs.Comment, limiters.Comment),
		Reaction:     handlers.NewReactionHandler(svcs.Reaction),
		Subscription: handlers.NewSubscriptionHandler(svcs.Subscription),
		Playlist:     handlers.NewPlaylistHandler(svcs.Playlist),
		Tweet:        handlers.NewTweetHandler(svcs.Tweet),
		Notification: handlers.NewNotificationHandler(svcs.Notification),
		Dashboard:    handlers.NewDashboardHandler(svcs.Dashboard),
		Category:     handlers.NewCategoryHandler(svcs.Category),
		WS:           ws.NewHandler(hub, svcs.Auth),
	}
}
