package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Tweet, bir kanalın kısa metin gönderisi (topluluk gönderisi).
type Tweet struct {
	ID        string       `json:"id"`
	OwnerID   string       `json:"owner_id"`
	Content   string       `json:"content"`
	ImageURL  string       `json:"image_url,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Owner     *UserSummary `json:"owner,omitempty"`
}

// TweetWithReactions, tweet listelerinde dönen zenginleştirilmiş görünüm.
type TweetWithReactions struct {
	Tweet
	TotalLike  int  `json:"total_like"`
	IsLiked    bool `json:"is_liked"`
	IsDisliked bool `json:"is_disliked"`
}

// CreateTweetRequest, tweet oluşturma isteği.
type CreateTweetRequest struct {
	Content string `json:"content"`
}

// Validate, CreateTweetRequest'i kontrol eder.
func (r *CreateTweetRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	l := utf8.RuneCountInString(r.Content)
	if l < 1 || l > 500 {
		return fmt.Errorf("content must be between 1 and 500 characters")
	}
	return nil
}

// UpdateTweetRequest, tweet düzenleme isteği.
type UpdateTweetRequest struct {
	Content string `json:"content"`
}

// Validate, UpdateTweetRequest'i kontrol eder.
func (r *UpdateTweetRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	l := utf8.RuneCountInString(r.Content)
	if l < 1 || l > 500 {
		return fmt.Errorf("content must be between 1 and 500 characters")
	}
	return nil
}
