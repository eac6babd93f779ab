// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model nedir?
// Veritabanındaki bir tablonun Go karşılığıdır.
// Aynı zamanda API'den gelen/giden verilerin şeklini de belirler.
//
// Go'da `json:"username"` gibi tag'ler, struct field'larının JSON'a
// nasıl serialize/deserialize edileceğini belirler.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// UserRole, kullanıcının platform rolünü temsil eder.
// Go'da enum yoktur, bunun yerine typed constant'lar kullanılır.
type UserRole string

// İzin verilen UserRole değerleri.
const (
	RoleUser       UserRole = "user"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super-admin"
)

// User, bir kullanıcıyı (aynı zamanda bir "kanalı") temsil eder.
//
// Playtube'da her kullanıcı aynı zamanda bir kanaldır — video yayınlar,
// abone toplar. Ayrı bir Channel tablosu yoktur; channel_id her zaman
// bir user_id'dir.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	AvatarURL    string    `json:"avatar_url"`
	CoverURL     *string   `json:"cover_url"` // *string = nullable — kapak resmi opsiyonel
	PasswordHash string    `json:"-"`         // json:"-" → API response'a DAHİL ETME (güvenlik!)
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSummary, populated referanslarda kullanılan küçültülmüş kullanıcı görünümü.
// Video owner'ı, comment owner'ı, subscriber listesi gibi yerlerde
// tam User yerine bu taşınır — password hash ve internal alanlar dışarı çıkmaz.
type UserSummary struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FullName  string  `json:"full_name"`
	AvatarURL string  `json:"avatar_url"`
	CoverURL  *string `json:"cover_url"`
}

// Summary, User'dan UserSummary üretir.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		CoverURL:  u.CoverURL,
	}
}

// ChannelProfile, bir kanal sayfasının public görünümü.
// Abone sayıları storage'dan her seferinde yeniden hesaplanır —
// in-memory sayaç tutulmaz, drift oluşmaz.
type ChannelProfile struct {
	UserSummary
	TotalSubscribers int  `json:"total_channel_subscribers_count"`
	TotalSubscribed  int  `json:"total_subscribed_count"`
	IsSubscribed     bool `json:"is_subscribed"`
}

// emailRegex, basit email format kontrolü.
// RFC 5322'nin tamamını kapsamaz — pratik bir whitespace/@ kontrolü yeterli.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailRegex, email format regex'ini döner (service katmanı da kullanır).
func EmailRegex() *regexp.Regexp {
	return emailRegex
}

// RegisterRequest, kayıt olurken frontend'den gelen veri.
// PasswordHash yerine Password alırız — hash'leme service katmanında yapılır.
// Avatar ve cover multipart dosya olarak ayrıca gelir, burada URL yoktur.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// Validate, RegisterRequest'in geçerli olup olmadığını kontrol eder.
// Validation kuralları:
//   - Username: 3-32 karakter, alfanumerik + alt çizgi, lowercase'e çevrilir
//   - Email: format kontrolü, lowercase'e çevrilir
//   - FullName: 3-64 karakter
//   - Password: 8-64 karakter
func (r *RegisterRequest) Validate() error {
	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
	usernameLen := utf8.RuneCountInString(r.Username)
	if usernameLen < 3 || usernameLen > 32 {
		return fmt.Errorf("username must be between 3 and 32 characters")
	}
	for _, ch := range r.Username {
		if !isValidUsernameChar(ch) {
			return fmt.Errorf("username can only contain letters, numbers, and underscores")
		}
	}

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}

	r.FullName = strings.TrimSpace(r.FullName)
	nameLen := utf8.RuneCountInString(r.FullName)
	if nameLen < 3 || nameLen > 64 {
		return fmt.Errorf("full name must be between 3 and 64 characters")
	}

	passLen := utf8.RuneCountInString(r.Password)
	if passLen < 8 || passLen > 64 {
		return fmt.Errorf("password must be between 8 and 64 characters")
	}

	return nil
}

// LoginRequest, giriş yaparken frontend'den gelen veri.
// Username VEYA email ile giriş yapılabilir — ikisinden biri dolu olmalı.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, LoginRequest'in geçerli olup olmadığını kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Username == "" && r.Email == "" {
		return fmt.Errorf("username or email is required")
	}
	if r.Email != "" && !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// UpdateUserRequest, hesap detayı güncellemesi için.
// Pointer alanlar nil ise o alan değiştirilmez (partial update).
type UpdateUserRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Username *string `json:"username"`
}

// Validate, UpdateUserRequest'in geçerli olup olmadığını kontrol eder.
// En az bir alan dolu olmalı.
func (r *UpdateUserRequest) Validate() error {
	if r.FullName == nil && r.Email == nil && r.Username == nil {
		return fmt.Errorf("at least one field is required")
	}
	if r.Username != nil {
		trimmed := strings.ToLower(strings.TrimSpace(*r.Username))
		r.Username = &trimmed
		l := utf8.RuneCountInString(trimmed)
		if l < 3 || l > 32 {
			return fmt.Errorf("username must be between 3 and 32 characters")
		}
		for _, ch := range trimmed {
			if !isValidUsernameChar(ch) {
				return fmt.Errorf("username can only contain letters, numbers, and underscores")
			}
		}
	}
	if r.Email != nil {
		trimmed := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &trimmed
		if !emailRegex.MatchString(trimmed) {
			return fmt.Errorf("invalid email format")
		}
	}
	if r.FullName != nil {
		trimmed := strings.TrimSpace(*r.FullName)
		r.FullName = &trimmed
		l := utf8.RuneCountInString(trimmed)
		if l < 3 || l > 64 {
			return fmt.Errorf("full name must be between 3 and 64 characters")
		}
	}
	return nil
}

// isValidUsernameChar, username'de izin verilen karakterleri kontrol eder.
func isValidUsernameChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_'
}
