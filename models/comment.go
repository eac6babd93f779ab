package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Comment, bir videoya yazılmış yorumu temsil eder.
type Comment struct {
	ID        string       `json:"id"`
	VideoID   string       `json:"video_id"`
	OwnerID   string       `json:"owner_id"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Owner     *UserSummary `json:"owner,omitempty"`
}

// CommentWithReactions, yorum listelerinde dönen zenginleştirilmiş görünüm.
type CommentWithReactions struct {
	Comment
	TotalLike  int  `json:"total_like"`
	IsLiked    bool `json:"is_liked"`
	IsDisliked bool `json:"is_disliked"`
}

// CreateCommentRequest, yorum ekleme isteği.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// Validate, CreateCommentRequest'i kontrol eder.
func (r *CreateCommentRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	l := utf8.RuneCountInString(r.Content)
	if l < 1 || l > 1000 {
		return fmt.Errorf("content must be between 1 and 1000 characters")
	}
	return nil
}

// UpdateCommentRequest, yorum düzenleme isteği.
// Sadece içerik değiştirilebilir.
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// Validate, UpdateCommentRequest'i kontrol eder.
func (r *UpdateCommentRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	l := utf8.RuneCountInString(r.Content)
	if l < 1 || l > 1000 {
		return fmt.Errorf("content must be between 1 and 1000 characters")
	}
	return nil
}

// CommentPage, sayfalanmış yorum listesi.
type CommentPage struct {
	Comments      []*CommentWithReactions `json:"comments"`
	TotalComments int                     `json:"total_comments"`
	Page          int                     `json:"page"`
	Limit         int                     `json:"limit"`
}
