package repository

import (
	"context"

	"github.com/akinalp/playtube/models"
)

// PlaylistRepository, playlist veritabanı işlemleri için interface.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	// GetByID, playlist'i videolarıyla birlikte döner.
	GetByID(ctx context.Context, id string) (*models.Playlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Playlist, error)
	Update(ctx context.Context, playlist *models.Playlist) error
	Delete(ctx context.Context, id string) error
	// AddVideo/RemoveVideo, playlist-video ilişkisini yönetir.
	// AddVideo idempotent'tir: aynı video ikinci kez eklenirse no-op.
	AddVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
}
