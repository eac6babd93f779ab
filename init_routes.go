// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// Middleware chain helper'ları burada tanımlıdır:
//   - auth: JWT token zorunlu (401 yoksa)
//   - optionalAuth: token varsa kullanıcıyı context'e ekler, yoksa anonim
package main

import (
	"net/http"
	"strings"

	"github.com/akinalp/playtube/config"
	"github.com/akinalp/playtube/middleware"
	"github.com/akinalp/playtube/repository"
	"github.com/akinalp/playtube/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// Route sıralama kuralı: Literal path'ler parametrik path'lerden ÖNCE tanımlanmalı.
// Örnek: "/api/v1/videos/liked" → "/api/v1/videos/{id}" öncesinde,
// yoksa Go router "liked" kelimesini bir video id olarak yorumlar.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
	cfg *config.Config,
) {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, userRepo)

	// ─── Middleware Chain Helpers ───
	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}
	optionalAuth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Optional(http.HandlerFunc(handler))
	}

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"playtube"}`))
	})

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /api/v1/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", h.Auth.Logout)
	mux.HandleFunc("POST /api/v1/auth/forgot-password", h.Auth.ForgotPassword)
	mux.HandleFunc("POST /api/v1/auth/reset-password", h.Auth.ResetPassword)

	// User — hesap yönetimi
	mux.Handle("GET /api/v1/users/me", auth(h.User.Me))
	mux.Handle("PATCH /api/v1/users/me", auth(h.User.UpdateDetails))
	mux.Handle("POST /api/v1/users/me/password", auth(h.Auth.ChangePassword))
	mux.Handle("PATCH /api/v1/users/me/avatar", auth(h.User.UpdateAvatar))
	mux.Handle("PATCH /api/v1/users/me/cover", auth(h.User.UpdateCover))
	mux.Handle("GET /api/v1/users/me/history", auth(h.User.GetWatchHistory))

	// Channels — kanal sayfası herkese açık (opsiyonel auth)
	mux.Handle("GET /api/v1/channels/{username}", optionalAuth(h.User.GetChannel))
	mux.Handle("GET /api/v1/channels/{channelId}/tweets", optionalAuth(h.Tweet.ListByChannel))

	// Videos — literal path'ler parametrik path'lerden önce
	mux.Handle("GET /api/v1/videos/liked", auth(h.Video.ListLiked))
	mux.Handle("GET /api/v1/videos", optionalAuth(h.Video.List))
	mux.Handle("POST /api/v1/videos", auth(h.Video.Publish))
	mux.Handle("GET /api/v1/videos/{id}", optionalAuth(h.Video.Get))
	mux.Handle("PATCH /api/v1/videos/{id}", auth(h.Video.Update))
	mux.Handle("DELETE /api/v1/videos/{id}", auth(h.Video.Delete))
	mux.Handle("PATCH /api/v1/videos/{id}/toggle-publish", auth(h.Video.TogglePublish))

	// Comments
	mux.Handle("GET /api/v1/videos/{id}/comments", optionalAuth(h.Comment.List))
	mux.Handle("POST /api/v1/videos/{id}/comments", auth(h.Comment.Create))
	mux.Handle("PATCH /api/v1/comments/{id}", auth(h.Comment.Update))
	mux.Handle("DELETE /api/v1/comments/{id}", auth(h.Comment.Delete))

	// Likes — target: video | comment | tweet
	mux.Handle("POST /api/v1/likes/{target}/{id}", auth(h.Reaction.Toggle))

	// Subscriptions
	mux.Handle("GET /api/v1/subscriptions/me", auth(h.Subscription.ListSubscribed))
	mux.Handle("POST /api/v1/subscriptions/{channelId}", auth(h.Subscription.Toggle))
	mux.Handle("GET /api/v1/subscriptions/{channelId}/subscribers", optionalAuth(h.Subscription.ListSubscribers))

	// Playlists
	mux.Handle("GET /api/v1/playlists/me", auth(h.Playlist.ListMine))
	mux.Handle("POST /api/v1/playlists", auth(h.Playlist.Create))
	mux.Handle("GET /api/v1/playlists/{id}", optionalAuth(h.Playlist.Get))
	mux.Handle("PATCH /api/v1/playlists/{id}", auth(h.Playlist.Update))
	mux.Handle("DELETE /api/v1/playlists/{id}", auth(h.Playlist.Delete))
	mux.Handle("POST /api/v1/playlists/{id}/videos/{videoId}", auth(h.Playlist.AddVideo))
	mux.Handle("DELETE /api/v1/playlists/{id}/videos/{videoId}", auth(h.Playlist.RemoveVideo))

	// Tweets
	mux.Handle("POST /api/v1/tweets", auth(h.Tweet.Create))
	mux.Handle("PATCH /api/v1/tweets/{id}", auth(h.Tweet.Update))
	mux.Handle("DELETE /api/v1/tweets/{id}", auth(h.Tweet.Delete))

	// Notifications
	mux.Handle("GET /api/v1/notifications", auth(h.Notification.List))
	mux.Handle("PATCH /api/v1/notifications/read-all", auth(h.Notification.MarkAllRead))
	mux.Handle("PATCH /api/v1/notifications/{id}/read", auth(h.Notification.MarkRead))

	// Dashboard
	mux.Handle("GET /api/v1/dashboard/stats", auth(h.Dashboard.Stats))
	mux.Handle("GET /api/v1/dashboard/videos", auth(h.Dashboard.Videos))

	// Categories
	mux.Handle("POST /api/v1/categories", auth(h.Category.Create))
	mux.HandleFunc("GET /api/v1/categories", h.Category.List)
	mux.HandleFunc("GET /api/v1/categories/{slug}", h.Category.GetBySlug)

	// Static file serving — yüklenen dosyalara erişim
	//
	// http.StripPrefix: URL'den "/api/uploads/" kısmını çıkarır.
	// http.FileServer: Kalan path'i upload dizininde dosya olarak arar.
	// Örnek: GET /api/uploads/videos/abc123_clip.mp4 → ./data/uploads/videos/abc123_clip.mp4
	//
	// Path traversal koruması:
	// http.FileServer zaten ".." path'lerini reddeder. Ek güvenlik için
	// sadece bilinen alt dizinleri (videos/, images/) kabul ediyoruz.
	uploadsHandler := http.StripPrefix("/api/uploads/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "videos/") && !strings.HasPrefix(r.URL.Path, "images/") {
			http.NotFound(w, r)
			return
		}
		if strings.Contains(r.URL.Path, "..") || strings.Contains(r.URL.Path, "\\") {
			http.NotFound(w, r)
			return
		}
		http.FileServer(http.Dir(cfg.Upload.Dir)).ServeHTTP(w, r)
	}))
	mux.Handle("GET /api/uploads/", uploadsHandler)

	// WebSocket — accessToken cookie'si veya token query parameter ile
	// authenticate edilir, ikisi de yoksa anonim bağlanır.
	//
	// Neden auth middleware kullanmıyoruz?
	// Bağlantı anonim de olabilir (public video izleyicisi) — middleware
	// 401 dönerdi. WS handler kendi içinde kimlik çözümlemesi yapar.
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)
}
