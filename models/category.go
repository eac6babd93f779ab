package models

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Category, videoların sınıflandırıldığı kategori.
// Temel set migration ile seed edilir; yenileri API üzerinden eklenebilir.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCategoryRequest, yeni kategori ekleme isteği.
// Slug istemciden alınmaz — isimden türetilir.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// Validate, CreateCategoryRequest'i kontrol eder.
func (r *CreateCategoryRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errRequired("name")
	}
	if l := utf8.RuneCountInString(r.Name); l < 2 || l > 50 {
		return errLength("name", 2, 50)
	}
	if Slugify(r.Name) == "" {
		return errInvalid("name")
	}
	return nil
}

// Slugify, kategori adından URL-güvenli slug üretir.
// Harf/rakam dışındaki karakterler tire olur, ardışık tireler tekilleşir.
// Örnek: "Science & Nature" → "science-nature".
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // baştaki tireleri at
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// ChannelStats, dashboard'daki kanal istatistikleri.
// Tüm sayılar storage'dan hesaplanır; dashboard servisi kısa TTL ile
// cache'ler.
type ChannelStats struct {
	TotalVideos      int   `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
	TotalSubscribers int   `json:"total_subscribers"`
	TotalLikes       int   `json:"total_likes"`
}

// WatchHistoryEntry, izleme geçmişindeki bir satır.
type WatchHistoryEntry struct {
	Video     *Video    `json:"video"`
	WatchedAt time.Time `json:"watched_at"`
}
