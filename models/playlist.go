package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Playlist, bir kullanıcının video koleksiyonu.
type Playlist struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"owner_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Owner       *UserSummary `json:"owner,omitempty"`
	VideoCount  int          `json:"video_count"`
	Videos      []*Video     `json:"videos,omitempty"` // Sadece detay sorgusunda doldurulur
}

// CreatePlaylistRequest, playlist oluşturma isteği.
type CreatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate, CreatePlaylistRequest'i kontrol eder.
func (r *CreatePlaylistRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	l := utf8.RuneCountInString(r.Name)
	if l < 1 || l > 100 {
		return fmt.Errorf("name must be between 1 and 100 characters")
	}
	r.Description = strings.TrimSpace(r.Description)
	if utf8.RuneCountInString(r.Description) > 1000 {
		return fmt.Errorf("description must be at most 1000 characters")
	}
	return nil
}

// UpdatePlaylistRequest, playlist güncelleme isteği.
type UpdatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Validate, UpdatePlaylistRequest'i kontrol eder.
func (r *UpdatePlaylistRequest) Validate() error {
	if r.Name == nil && r.Description == nil {
		return fmt.Errorf("at least one field is required")
	}
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
		l := utf8.RuneCountInString(trimmed)
		if l < 1 || l > 100 {
			return fmt.Errorf("name must be between 1 and 100 characters")
		}
	}
	if r.Description != nil {
		trimmed := strings.TrimSpace(*r.Description)
		r.Description = &trimmed
		if utf8.RuneCountInString(trimmed) > 1000 {
			return fmt.Errorf("description must be at most 1000 characters")
		}
	}
	return nil
}
