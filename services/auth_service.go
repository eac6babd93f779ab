// Package services, business logic katmanını barındırır.
//
// Service Layer Pattern nedir?
// Handler (HTTP) ile Repository (DB) arasında oturan katmandır.
// Tüm iş kuralları burada yaşar:
//   - Şifre hash'leme
//   - JWT token oluşturma
//   - Realtime event emit kararları
//
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
// Service ASLA doğrudan SQL çalıştırmaz — Repository interface'i kullanır.
package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/pkg/email"
	"github.com/akinalp/playtube/repository"
)

// resetTokenTTL: şifre sıfırlama linkinin geçerlilik süresi.
const resetTokenTTL = 20 * time.Minute

// AuthService interface'i — dışarıya açık API.
// Handler bu interface'e bağımlıdır, concrete struct'a değil.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest, avatarURL string, coverURL *string) (*models.LoginResponse, error)
	// Login, username VEYA email ile giriş yapar.
	// clientMeta (user agent + IP) session satırına yazılır.
	Login(ctx context.Context, req *models.LoginRequest, userAgent, ip string) (*models.LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
	ChangePassword(ctx context.Context, userID string, req *models.ChangePasswordRequest) error
	// ForgotPassword, reset token üretir ve email gönderir.
	// Email kayıtlı değilse de hata DÖNMEZ — user enumeration engellenir.
	ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
}

// authService, AuthService interface'inin implementasyonu.
type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	resetRepo   repository.PasswordResetRepository
	emailSender email.EmailSender
	jwtSecret   []byte
	accessExp   time.Duration
	refreshExp  time.Duration
}

// NewAuthService, constructor.
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	resetRepo repository.PasswordResetRepository,
	emailSender email.EmailSender,
	jwtSecret string,
	accessExpMinutes int,
	refreshExpDays int,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		resetRepo:   resetRepo,
		emailSender: emailSender,
		jwtSecret:   []byte(jwtSecret),
		accessExp:   time.Duration(accessExpMinutes) * time.Minute,
		refreshExp:  time.Duration(refreshExpDays) * 24 * time.Hour,
	}
}

// Register, yeni kullanıcı kaydı oluşturur.
// Avatar zorunlu, cover opsiyonel — dosyalar handler katmanında media
// store'a yazılır, buraya sadece URL'leri gelir.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest, avatarURL string, coverURL *string) (*models.LoginResponse, error) {
	// 1. Validation
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	if avatarURL == "" {
		return nil, fmt.Errorf("%w: avatar is required", pkg.ErrBadRequest)
	}

	// 2. Bcrypt hash (cost=12)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// 3. User oluştur
	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		AvatarURL:    avatarURL,
		CoverURL:     coverURL,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err // ErrAlreadyExists olabilir
	}

	// 4. Token çifti oluştur — kayıt sonrası otomatik login
	return s.generateTokens(ctx, user, "", "")
}

// Login, kullanıcı girişi yapar.
// Username ve email'den hangisi doluysa onunla aranır.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest, userAgent, ip string) (*models.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Kullanıcıyı bul
	var user *models.User
	var err error
	if req.Username != "" {
		user, err = s.userRepo.GetByUsername(ctx, req.Username)
	} else {
		user, err = s.userRepo.GetByEmail(ctx, req.Email)
	}
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			// "user not found" ile "wrong password" aynı mesajı döner —
			// hangi hesapların var olduğu sızdırılmaz
			return nil, fmt.Errorf("%w: invalid credentials", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	// Bcrypt şifre karşılaştırması
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", pkg.ErrUnauthorized)
	}

	return s.generateTokens(ctx, user, userAgent, ip)
}

// RefreshToken, süresi dolmuş access token'ı yenilemek için kullanılır.
//
// Rotation: eski refresh token her kullanımda iptal edilir, yenisi verilir.
// Çalınan bir refresh token ya kurban ya saldırgan tarafından kullanılır —
// ikinci kullanan 401 alır ve sızıntı fark edilir.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.LoginResponse, error) {
	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid refresh token", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if session.IsExpired() {
		if delErr := s.sessionRepo.Delete(ctx, session.ID); delErr != nil {
			return nil, fmt.Errorf("failed to delete expired session: %w", delErr)
		}
		return nil, fmt.Errorf("%w: refresh token expired", pkg.ErrUnauthorized)
	}

	// Rotation: eski session'ı sil, generateTokens yenisini yazar
	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to delete old session: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	return s.generateTokens(ctx, user, session.UserAgent, session.IPAddress)
}

// Logout, refresh token'ı iptal eder (session siler).
// Token zaten geçersizse sessizce başarılı döner — logout idempotent'tir.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil
		}
		return err
	}

	return s.sessionRepo.Delete(ctx, session.ID)
}

// ValidateAccessToken, JWT access token'ı doğrular ve claims'i döner.
func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", pkg.ErrUnauthorized)
	}

	return claims, nil
}

// ChangePassword, kullanıcının şifresini değiştirir.
// Başarılı değişiklik sonrası TÜM oturumlar iptal edilir — çalınmış
// bir oturum şifre değişikliğinden sonra yaşayamaz.
func (s *authService) ChangePassword(ctx context.Context, userID string, req *models.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", pkg.ErrUnauthorized)
	}

	if req.OldPassword == req.NewPassword {
		return fmt.Errorf("%w: new password must be different from current password", pkg.ErrBadRequest)
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(newHash)); err != nil {
		return err
	}

	return s.sessionRepo.DeleteByUser(ctx, userID)
}

// ForgotPassword, şifre sıfırlama akışını başlatır.
//
// Güvenlik notları:
// - Email kayıtlı değilse de başarılı döner (user enumeration engeli)
// - Token DB'de SHA-256 hash olarak saklanır, email'de plaintext gider
// - Yeni istek eski bekleyen token'ları iptal eder
func (s *authService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil // Sessizce başarılı — hesap varlığı sızdırılmaz
		}
		return err
	}

	if err := s.resetRepo.InvalidateForUser(ctx, user.ID); err != nil {
		return err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	plainToken := hex.EncodeToString(tokenBytes)

	reset := &models.PasswordReset{
		UserID:    user.ID,
		TokenHash: hashToken(plainToken),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.resetRepo.Create(ctx, reset); err != nil {
		return err
	}

	if err := s.emailSender.SendPasswordReset(ctx, user.Email, plainToken); err != nil {
		// Email gönderilemedi — token DB'de duruyor, kullanıcı tekrar deneyebilir
		log.Printf("[auth] password reset email failed for user %s: %v", user.ID, err)
		return fmt.Errorf("%w: could not send reset email", pkg.ErrInternal)
	}

	return nil
}

// ResetPassword, email'deki token ile yeni şifre belirler.
func (s *authService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	reset, err := s.resetRepo.GetByTokenHash(ctx, hashToken(req.Token))
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrUnauthorized)
		}
		return err
	}

	if !reset.IsUsable() {
		return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrUnauthorized)
	}

	// Token'ı ÖNCE tüket — MarkUsed'un UPDATE ... WHERE used_at IS NULL
	// koşulu eşzamanlı çifte kullanımı engeller
	if err := s.resetRepo.MarkUsed(ctx, reset.ID); err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrUnauthorized)
		}
		return err
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, reset.UserID, string(newHash)); err != nil {
		return err
	}

	// Şifre sıfırlandı — mevcut tüm oturumları düşür
	return s.sessionRepo.DeleteByUser(ctx, reset.UserID)
}

// ─── Private Helpers ───

func (s *authService) generateTokens(ctx context.Context, user *models.User, userAgent, ip string) (*models.LoginResponse, error) {
	now := time.Now()
	accessClaims := &models.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "playtube",
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessString, err := accessToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshBytes := make([]byte, 32)
	if _, err := rand.Read(refreshBytes); err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refreshString := hex.EncodeToString(refreshBytes)

	session := &models.Session{
		UserID:           user.ID,
		RefreshTokenHash: hashToken(refreshString),
		UserAgent:        userAgent,
		IPAddress:        ip,
		ExpiresAt:        now.Add(s.refreshExp),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.LoginResponse{
		User: user.Summary(),
		TokenPair: models.TokenPair{
			AccessToken:  accessString,
			RefreshToken: refreshString,
		},
	}, nil
}

// hashToken, refresh/reset token'larının DB'de saklanan SHA-256 hash'ini üretir.
// Bcrypt değil SHA-256: token zaten 256-bit rastgele, brute-force anlamsız —
// hash sadece DB sızıntısında token'ların kullanılmasını engeller.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
