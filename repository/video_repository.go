package repository

import (
	"context"

	"github.com/akinalp/playtube/models"
)

// VideoRepository, video veritabanı işlemleri için interface.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	// GetByID, videoyu owner bilgisiyle (JOIN) döner.
	GetByID(ctx context.Context, id string) (*models.Video, error)
	// List, arama/sıralama/sayfalama ile video listesi döner.
	// Sadece yayında (is_published) olan videolar listelenir.
	List(ctx context.Context, q models.VideoListQuery) (*models.VideoPage, error)
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id string) error
	// TogglePublish, yayın durumunu tersine çevirir ve yeni durumu döner.
	TogglePublish(ctx context.Context, id string) (bool, error)
	// IncrementViews, izlenme sayacını 1 artırır.
	IncrementViews(ctx context.Context, id string) error
	// RecordWatch, izleme geçmişine yazar (aynı video tekrar izlenirse
	// watched_at güncellenir, çift satır oluşmaz).
	RecordWatch(ctx context.Context, userID, videoID string) error
	GetWatchHistory(ctx context.Context, userID string, limit int) ([]*models.WatchHistoryEntry, error)
	// CountByOwner ve SumViewsByOwner, dashboard istatistikleri için.
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	SumViewsByOwner(ctx context.Context, ownerID string) (int64, error)
}
