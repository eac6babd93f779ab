package repository

import (
	"context"

	"github.com/akinalp/playtube/models"
)

// ReactionRepository, like/dislike veritabanı işlemleri için interface.
//
// Toggle state machine:
// - Reaksiyon yok + like → like eklenir (added)
// - like var + like → kaldırılır (removed)
// - like var + dislike → dislike'a çevrilir (added)
// Her toggle sonrası güncel sayaçlar storage'dan yeniden sayılır.
type ReactionRepository interface {
	// Toggle, kullanıcının hedef üzerindeki reaksiyonunu değiştirir
	// ve güncel sayaçları döner. Tüm adımlar tek transaction'da çalışır —
	// eşzamanlı toggle'lar kaybolmaz.
	Toggle(ctx context.Context, target models.ReactionTarget, targetID, userID string, kind models.ReactionKind) (*models.ToggleResult, error)
	// Counts, hedefin güncel like/dislike toplamlarını döner.
	Counts(ctx context.Context, target models.ReactionTarget, targetID string) (*models.ReactionCounts, error)
	// Get, kullanıcının hedef üzerindeki mevcut reaksiyonunu döner
	// (yoksa pkg.ErrNotFound).
	Get(ctx context.Context, target models.ReactionTarget, targetID, userID string) (*models.Reaction, error)
	// ListLikedVideos, kullanıcının like'ladığı videoları döner.
	ListLikedVideos(ctx context.Context, userID string, limit int) ([]*models.Video, error)
	// CountLikesForOwner, bir kullanıcının TÜM videolarının aldığı toplam
	// like sayısını döner (dashboard istatistiği).
	CountLikesForOwner(ctx context.Context, ownerID string) (int, error)
}
