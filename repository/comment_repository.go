package repository

import (
	"context"

	"github.com/akinalp/playtube/models"
)

// CommentRepository, yorum veritabanı işlemleri için interface.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	// ListByVideo, videonun yorumlarını reaction sayılarıyla birlikte döner.
	// viewerID boş olabilir (anonim) — is_liked/is_disliked false kalır.
	ListByVideo(ctx context.Context, videoID, viewerID string, page, limit int) (*models.CommentPage, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id string) error
	// CountByVideo, comment_* event payload'ındaki total_comments için.
	CountByVideo(ctx context.Context, videoID string) (int, error)
}
