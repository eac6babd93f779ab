// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
package main

import (
	"log"
	"time"

	"github.com/akinalp/playtube/config"
	"github.com/akinalp/playtube/pkg/email"
	"github.com/akinalp/playtube/pkg/ratelimit"
	"github.com/akinalp/playtube/services"
	"github.com/akinalp/playtube/ws"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth         services.AuthService
	Media        services.MediaService
	User         services.UserService
	Video        services.VideoService
	Comment      services.CommentService
	Reaction     services.ReactionService
	Subscription services.SubscriptionService
	Playlist     services.PlaylistService
	Tweet        services.TweetService
	Notification services.NotificationService
	Dashboard    services.DashboardService
	Category     services.CategoryService
}

// RateLimiters, tüm rate limiter instance'larını tutan container.
type RateLimiters struct {
	Login   *ratelimit.LoginRateLimiter
	Comment *ratelimit.CommentRateLimiter
}

// initServices, tüm service'leri ve rate limiter'ları oluşturur.
// hub, service'ler arası paylaşılan event yayını dependency'sidir.
func initServices(repos *Repositories, hub ws.EventPublisher, cfg *config.Config) (*Services, *RateLimiters, error) {
	// ─── Media store ───
	mediaService, err := services.NewMediaService(cfg.Upload.Dir, cfg.Upload.MaxVideoSize, cfg.Upload.MaxImageSize)
	if err != nil {
		return nil, nil, err
	}

	// ─── Email (opsiyonel) ───
	// API key yoksa noop sender devreye girer — dev ortamında reset
	// token'ı log'a yazılır, akış çalışmaya devam eder.
	var emailSender email.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.ResetBaseURL)
		log.Printf("[main] email service enabled (from=%s)", cfg.Email.FromAddress)
	} else {
		emailSender = email.NewNoopSender()
		log.Println("[main] email service disabled (RESEND_API_KEY not set)")
	}

	authService := services.NewAuthService(
		repos.User, repos.Session, repos.PasswordReset, emailSender,
		cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry,
	)

	userService := services.NewUserService(repos.User, repos.Subscription, repos.Video, mediaService)
	videoService := services.NewVideoService(
		repos.Video, repos.User, repos.Reaction, repos.Subscription,
		repos.Notification, mediaService, hub,
	)
	commentService := services.NewCommentService(repos.Comment, repos.Video, repos.User, hub)
	reactionService := services.NewReactionService(repos.Reaction, repos.Video, repos.Comment, repos.Tweet, hub)
	subscriptionService := services.NewSubscriptionService(repos.Subscription, repos.User, hub)
	playlistService := services.NewPlaylistService(repos.Playlist, repos.Video)
	tweetService := services.NewTweetService(repos.Tweet, repos.User, repos.Subscription, repos.Notification, mediaService)
	notificationService := services.NewNotificationService(repos.Notification)
	dashboardService := services.NewDashboardService(repos.Video, repos.Subscription, repos.Reaction)
	categoryService := services.NewCategoryService(repos.Category)

	// ─── Rate Limiters ───
	loginLimiter := ratelimit.NewLoginRateLimiter(5, 2*time.Minute)
	commentLimiter := ratelimit.NewCommentRateLimiter(5, 10*time.Second, 30*time.Second)

	svcs := &Services{
		Auth:         authService,
		Media:        mediaService,
		User:         userService,
		Video:        videoService,
		Comment:      commentService,
		Reaction:     reactionService,
		Subscription: subscriptionService,
		Playlist:     playlistService,
		Tweet:        tweetService,
		Notification: notificationService,
		Dashboard:    dashboardService,
		Category:     categoryService,
	}

	limiters := &RateLimiters{
		Login:   loginLimiter,
		Comment: commentLimiter,
	}

	return svcs, limiters, nil
}
