package repository

import (
	"context"

	"github.com/akinalp/playtube/models"
)

// TweetRepository, tweet (topluluk gönderisi) veritabanı işlemleri için interface.
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id string) (*models.Tweet, error)
	// ListByOwner, kanalın tweet'lerini reaction sayılarıyla döner.
	// viewerID boş olabilir (anonim).
	ListByOwner(ctx context.Context, ownerID, viewerID string) ([]*models.TweetWithReactions, error)
	Update(ctx context.Context, tweet *models.Tweet) error
	Delete(ctx context.Context, id string) error
}
