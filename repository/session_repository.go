package repository

import (
	"context"

	"github.com/akinalp/playtube/models"
)

// SessionRepository, refresh token oturumlarının veritabanı işlemleri.
//
// Refresh token rotation burada saplanır:
// her refresh'te eski oturum satırı silinir, yenisi yazılır.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	// GetByTokenHash, refresh token'ın SHA-256 hash'i ile oturumu bulur.
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteByUser, kullanıcının TÜM oturumlarını siler (şifre değişince).
	DeleteByUser(ctx context.Context, userID string) error
	// DeleteExpired, süresi dolmuş oturumları temizler (periyodik bakım).
	DeleteExpired(ctx context.Context) (int64, error)
}

// PasswordResetRepository, şifre sıfırlama token kayıtlarının işlemleri.
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *models.PasswordReset) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordReset, error)
	// MarkUsed, token'ı kullanılmış olarak işaretler — tek kullanımlıktır.
	MarkUsed(ctx context.Context, id string) error
	// InvalidateForUser, kullanıcının bekleyen tüm reset token'larını geçersiz kılar.
	// Yeni bir forgot-password isteği eskilerini iptal eder.
	InvalidateForUser(ctx context.Context, userID string) error
}
