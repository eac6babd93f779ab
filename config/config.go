// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Go'da "struct" bir veri yapısıdır — birden fazla field'ı bir arada tutar.
// Config struct'ı tüm ayarları tek bir yerde toplar, böylece
// her yerde ayrı ayrı os.Getenv() çağırmak yerine tek bir Config nesnesi taşırız.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — Single Responsibility: her struct tek bir concern'ü temsil eder.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Upload   UploadConfig
	Email    EmailConfig
	CORS     CORSConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host        string
	Port        int
	Environment string // "development" | "production"
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/playtube.db)
}

// JWTConfig, JWT token ayarları.
type JWTConfig struct {
	Secret             string // Token imzalama anahtarı — GİZLİ TUTULMALI
	AccessTokenExpiry  int    // Dakika cinsinden (varsayılan: 15)
	RefreshTokenExpiry int    // Gün cinsinden (varsayılan: 7)
}

// UploadConfig, dosya yükleme ayarları.
type UploadConfig struct {
	Dir          string // Dosyaların kaydedileceği dizin
	MaxVideoSize int64  // Byte cinsinden max video boyutu (varsayılan: 200MB)
	MaxImageSize int64  // Byte cinsinden max görsel boyutu (varsayılan: 8MB)
}

// EmailConfig, transactional email (şifre sıfırlama) ayarları.
type EmailConfig struct {
	ResendAPIKey string // Boşsa email gönderimi devre dışı, log'a yazılır
	FromAddress  string
	ResetBaseURL string // Frontend'in şifre sıfırlama sayfası
}

// CORSConfig, cross-origin istek ayarları.
type CORSConfig struct {
	AllowedOrigins []string
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler (development kolaylığı için).
//
// Go'da error handling: Go'da exception/try-catch yoktur.
// Fonksiyonlar hata durumunda (value, error) tuple'ı döner.
// Çağıran taraf her zaman error'ı kontrol ETMEK ZORUNDADIR.
func Load() (*Config, error) {
	// .env dosyasını yükle — dosya yoksa hata vermez, sessizce devam eder.
	// Production'da bu dosya olmaz, gerçek env variable'lar kullanılır.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	accessExpiry, err := strconv.Atoi(getEnv("JWT_ACCESS_EXPIRY_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY_MINUTES: %w", err)
	}

	refreshExpiry, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRY_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRY_DAYS: %w", err)
	}

	maxVideoSize, err := strconv.ParseInt(getEnv("UPLOAD_MAX_VIDEO_SIZE", "209715200"), 10, 64) // 200MB
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_VIDEO_SIZE: %w", err)
	}

	maxImageSize, err := strconv.ParseInt(getEnv("UPLOAD_MAX_IMAGE_SIZE", "8388608"), 10, 64) // 8MB
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_IMAGE_SIZE: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        port,
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/playtube.db"),
		},
		JWT: JWTConfig{
			Secret:             jwtSecret,
			AccessTokenExpiry:  accessExpiry,
			RefreshTokenExpiry: refreshExpiry,
		},
		Upload: UploadConfig{
			Dir:          getEnv("UPLOAD_DIR", "./data/uploads"),
			MaxVideoSize: maxVideoSize,
			MaxImageSize: maxImageSize,
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromAddress:  getEnv("EMAIL_FROM", "Playtube <noreply@playtube.dev>"),
			ResetBaseURL: getEnv("PASSWORD_RESET_URL", "http://localhost:3000/reset-password"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitAndTrim(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:8080").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction, ortamın production olup olmadığını döner.
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// splitAndTrim, virgülle ayrılmış listeyi parçalar, boşlukları temizler.
func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
