package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Video, yayınlanmış bir videoyu temsil eder.
//
// VideoURL ve ThumbnailURL, media store'un döndürdüğü public path'lerdir.
// Duration, "HH:MM:SS" formatında saklanır — frontend doğrudan gösterir.
type Video struct {
	ID           string       `json:"id"`
	OwnerID      string       `json:"owner_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	VideoURL     string       `json:"video_url"`
	ThumbnailURL string       `json:"thumbnail_url"`
	Duration     string       `json:"duration"`
	Views        int64        `json:"views"`
	IsPublished  bool         `json:"is_published"`
	CategoryID   *string      `json:"category_id"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Owner        *UserSummary `json:"owner,omitempty"` // JOIN ile doldurulur, her sorguda gelmez
}

// VideoWithReactions, video detay sayfası için reaction sayılarıyla
// zenginleştirilmiş görünüm.
type VideoWithReactions struct {
	Video
	TotalLike    int  `json:"total_like"`
	TotalUnlike  int  `json:"total_unlike"`
	IsLiked      bool `json:"is_liked"`
	IsDisliked   bool `json:"is_disliked"`
	IsSubscribed bool `json:"is_subscribed"`
}

// PublishVideoRequest, video yayınlama formunun metin alanları.
// Video ve thumbnail dosyaları multipart olarak ayrıca gelir.
type PublishVideoRequest struct {
	Title           string
	Description     string
	CategoryID      string
	DurationSeconds float64
}

// Validate, PublishVideoRequest'i kontrol eder.
func (r *PublishVideoRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	titleLen := utf8.RuneCountInString(r.Title)
	if titleLen < 1 || titleLen > 200 {
		return fmt.Errorf("title must be between 1 and 200 characters")
	}
	r.Description = strings.TrimSpace(r.Description)
	if utf8.RuneCountInString(r.Description) > 5000 {
		return fmt.Errorf("description must be at most 5000 characters")
	}
	if r.DurationSeconds < 0 {
		return fmt.Errorf("duration must be non-negative")
	}
	return nil
}

// UpdateVideoRequest, video detayı güncelleme formu.
// Thumbnail dosyası opsiyonel, multipart olarak gelir.
type UpdateVideoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CategoryID  *string `json:"category_id"`
}

// Validate, UpdateVideoRequest'i kontrol eder.
func (r *UpdateVideoRequest) Validate() error {
	if r.Title == nil && r.Description == nil && r.CategoryID == nil {
		return fmt.Errorf("at least one field is required")
	}
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		r.Title = &trimmed
		l := utf8.RuneCountInString(trimmed)
		if l < 1 || l > 200 {
			return fmt.Errorf("title must be between 1 and 200 characters")
		}
	}
	if r.Description != nil {
		trimmed := strings.TrimSpace(*r.Description)
		r.Description = &trimmed
		if utf8.RuneCountInString(trimmed) > 5000 {
			return fmt.Errorf("description must be at most 5000 characters")
		}
	}
	return nil
}

// VideoListQuery, video listeleme endpoint'inin query parametreleri.
type VideoListQuery struct {
	Query     string // Başlık/açıklama içinde arama
	OwnerID   string // Belirli bir kanalın videoları
	SortBy    string // created_at | views | title
	SortOrder string // asc | desc
	Page      int
	Limit     int

	// IncludeUnpublished: taslak videoları da listeye dahil et.
	// Query parametresinden asla bind edilmez — sadece dashboard
	// servisi kanal sahibi için set eder.
	IncludeUnpublished bool
}

// Normalize, query parametrelerini güvenli varsayılanlara çeker.
// SortBy whitelist'i SQL injection'a karşı şarttır — sıralama sütunu
// placeholder ile bind edilemez, string olarak SQL'e girer.
func (q *VideoListQuery) Normalize() {
	switch q.SortBy {
	case "views", "title", "created_at":
	default:
		q.SortBy = "created_at"
	}
	if q.SortOrder != "asc" {
		q.SortOrder = "desc"
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 50 {
		q.Limit = 12
	}
}

// Offset, SQL OFFSET değerini hesaplar.
func (q *VideoListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// VideoPage, sayfalanmış video listesi response'u.
type VideoPage struct {
	Videos     []*Video `json:"videos"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"total_pages"`
}

// FormatDuration, saniye cinsinden süreyi "HH:MM:SS" formatına çevirir.
// 1 saatin altındaki videolar için de saat kısmı korunur (00:04:20) —
// frontend tek format bekler.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
