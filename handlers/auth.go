// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler'ın görevi çok basit ve "ince" (thin) olmalı:
// 1. Request body'yi parse et (JSON → struct)
// 2. Service katmanını çağır
// 3. Sonucu HTTP response olarak döndür
//
// Handler ASLA iş mantığı (business logic) içermez.
// Handler ASLA doğrudan DB'ye erişmez.
// Tüm akıl service'de, handler sadece köprü.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/pkg/ratelimit"
	"github.com/akinalp/playtube/services"
)

// maxImageFormMemory, multipart form parse ederken bellekte tutulacak
// maksimum boyut — kalanı geçici dosyaya taşar.
const maxImageFormMemory = 16 << 20 // 16MB

// AuthHandler, auth endpoint'lerini yöneten struct.
// Service interface'i ve rate limiter constructor'dan alınır (DI).
type AuthHandler struct {
	authService   services.AuthService
	mediaService  services.MediaService
	loginLimiter  *ratelimit.LoginRateLimiter
	secureCookies bool
	accessMaxAge  time.Duration
	refreshMaxAge time.Duration
}

// NewAuthHandler, constructor.
// loginLimiter: Login brute-force koruması. nil ise rate limiting devre dışı kalır.
// secureCookies: production'da true — cookie'ler sadece HTTPS üzerinden gider.
func NewAuthHandler(
	authService services.AuthService,
	mediaService services.MediaService,
	loginLimiter *ratelimit.LoginRateLimiter,
	secureCookies bool,
	accessMaxAge, refreshMaxAge time.Duration,
) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		mediaService:  mediaService,
		loginLimiter:  loginLimiter,
		secureCookies: secureCookies,
		accessMaxAge:  accessMaxAge,
		refreshMaxAge: refreshMaxAge,
	}
}

// Register godoc
// POST /api/v1/auth/register
//
// multipart/form-data:
//   - username, email, full_name, password (text)
//   - avatar (file, zorunlu)
//   - cover (file, opsiyonel)
//
// Başarılı kayıt otomatik login sayılır — token cookie'leri set edilir.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageFormMemory); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := models.RegisterRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		FullName: r.FormValue("full_name"),
		Password: r.FormValue("password"),
	}
	if err := req.Validate(); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	avatarFile, avatarHeader, err := r.FormFile("avatar")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer avatarFile.Close()

	avatarURL, err := h.mediaService.SaveImage(avatarFile, avatarHeader)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	// Cover opsiyonel — yoksa nil kalır
	var coverURL *string
	if coverFile, coverHeader, err := r.FormFile("cover"); err == nil {
		defer coverFile.Close()
		url, err := h.mediaService.SaveImage(coverFile, coverHeader)
		if err != nil {
			h.mediaService.Remove(avatarURL)
			pkg.Error(w, err)
			return
		}
		coverURL = &url
	}

	result, err := h.authService.Register(r.Context(), &req, avatarURL, coverURL)
	if err != nil {
		h.mediaService.Remove(avatarURL)
		if coverURL != nil {
			h.mediaService.Remove(*coverURL)
		}
		pkg.Error(w, err)
		return
	}

	h.setAuthCookies(w, result.AccessToken, result.RefreshToken)
	pkg.JSON(w, http.StatusCreated, result, "registered successfully")
}

// Login godoc
// POST /api/v1/auth/login
// Body: { "username" VEYA "email": "...", "password": "..." }
//
// Rate limiting: IP bazlı brute-force koruması.
// - Limit aşıldığında 429 Too Many Requests döner.
// - Başarılı login sayacı sıfırlar — meşru kullanıcı bloke olmaz.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		retryAfter := h.loginLimiter.RetryAfterSeconds(ip)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
			fmt.Sprintf("too many login attempts, please try again in %s",
				ratelimit.FormatRetryMessage(retryAfter)))
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Login(r.Context(), &req, r.UserAgent(), ip)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	// Başarılı login — sayacı sıfırla
	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}

	h.setAuthCookies(w, result.AccessToken, result.RefreshToken)
	pkg.JSON(w, http.StatusOK, result, "logged in successfully")
}

// Refresh godoc
// POST /api/v1/auth/refresh
//
// Refresh token iki yerden okunur: refreshToken cookie'si (browser)
// veya body'deki refresh_token alanı (mobil).
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := h.extractRefreshToken(r)
	if refreshToken == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "refresh token is required")
		return
	}

	result, err := h.authService.RefreshToken(r.Context(), refreshToken)
	if err != nil {
		// Geçersiz token'da cookie'ler de temizlenir — client takılı kalmaz
		h.clearAuthCookies(w)
		pkg.Error(w, err)
		return
	}

	h.setAuthCookies(w, result.AccessToken, result.RefreshToken)
	pkg.JSON(w, http.StatusOK, result, "token refreshed")
}

// Logout godoc
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken := h.extractRefreshToken(r)
	if refreshToken != "" {
		if err := h.authService.Logout(r.Context(), refreshToken); err != nil {
			pkg.Error(w, err)
			return
		}
	}

	h.clearAuthCookies(w)
	pkg.JSON(w, http.StatusOK, nil, "logged out successfully")
}

// ForgotPassword godoc
// POST /api/v1/auth/forgot-password
// Body: { "email": "..." }
//
// Güvenlik: Email DB'de yoksa bile aynı success yanıtı döner
// (enumeration koruması).
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ForgotPassword(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, nil, "if the email exists, a reset link has been sent")
}

// ResetPassword godoc
// POST /api/v1/auth/reset-password
// Body: { "token": "...", "new_password": "..." }
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ResetPassword(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, nil, "password has been reset successfully")
}

// ChangePassword godoc
// POST /api/v1/users/me/password
// Auth middleware gerektirir.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ChangePassword(r.Context(), user.ID, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	// Tüm oturumlar iptal edildi — bu client'ın cookie'leri de temizlenir
	h.clearAuthCookies(w)
	pkg.JSON(w, http.StatusOK, nil, "password changed, please log in again")
}

// ─── Cookie Helpers ───

// setAuthCookies, access ve refresh token'ları httpOnly cookie olarak yazar.
// httpOnly → JavaScript erişemez, XSS ile token çalınamaz.
func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(h.accessMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(h.refreshMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// extractRefreshToken, refresh token'ı cookie'den veya body'den okur.
func (h *AuthHandler) extractRefreshToken(r *http.Request) string {
	if cookie, err := r.Cookie("refreshToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

// ─── Context ───

// contextKey, context'te kullanıcı bilgisi taşımak için kullanılan key tipi.
//
// Go'da context.Value() any tip kabul eder — string key kullanmak çakışmaya
// neden olabilir. Özel bir tip tanımlayarak namespace collision'ı önleriz.
type contextKey string

// UserContextKey, auth middleware'ın context'e eklediği *models.User'ın key'i.
const UserContextKey contextKey = "user"

// UserFromContext, request context'inden giriş yapmış kullanıcıyı okur.
func UserFromContext(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	return user, ok
}

// UserIDFromContext, opsiyonel auth'ta viewer id'si için kısayol —
// anonim request'te boş string döner.
func UserIDFromContext(r *http.Request) string {
	if user, ok := UserFromContext(r); ok {
		return user.ID
	}
	return ""
}
