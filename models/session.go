package models

import "time"

// Session, bir kullanıcının aktif refresh token oturumunu temsil eder.
//
// Neden session tablosu?
// Access token stateless (JWT) ama refresh token stateful tutulur.
// Böylece logout anında oturum sunucu tarafında iptal edilebilir,
// ve rotation ile çalınan refresh token'lar geçersiz kılınır.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"-"` // Token'ın kendisi değil, SHA-256 hash'i saklanır
	UserAgent        string    `json:"user_agent"`
	IPAddress        string    `json:"ip_address"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsExpired, oturumun süresinin dolup dolmadığını kontrol eder.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// PasswordReset, şifre sıfırlama token kaydı.
// Token plaintext olarak DEĞİL, SHA-256 hash'i olarak saklanır —
// veritabanı sızsa bile token'lar kullanılamaz.
type PasswordReset struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsUsable, token'ın hâlâ kullanılabilir olup olmadığını kontrol eder.
// Kullanılmış veya süresi dolmuş token geçersizdir.
func (p *PasswordReset) IsUsable() bool {
	return p.UsedAt == nil && time.Now().Before(p.ExpiresAt)
}

// ChangePasswordRequest, oturum açıkken şifre değiştirme isteği.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Validate, ChangePasswordRequest'i kontrol eder.
func (r *ChangePasswordRequest) Validate() error {
	if r.OldPassword == "" {
		return errRequired("old_password")
	}
	if len(r.NewPassword) < 8 || len(r.NewPassword) > 64 {
		return errLength("new_password", 8, 64)
	}
	return nil
}

// ForgotPasswordRequest, şifremi unuttum akışını başlatan istek.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Validate, ForgotPasswordRequest'i kontrol eder.
func (r *ForgotPasswordRequest) Validate() error {
	if !emailRegex.MatchString(r.Email) {
		return errInvalid("email")
	}
	return nil
}

// ResetPasswordRequest, email'deki link üzerinden gelen sıfırlama isteği.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Validate, ResetPasswordRequest'i kontrol eder.
func (r *ResetPasswordRequest) Validate() error {
	if r.Token == "" {
		return errRequired("token")
	}
	if len(r.NewPassword) < 8 || len(r.NewPassword) > 64 {
		return errLength("new_password", 8, 64)
	}
	return nil
}
