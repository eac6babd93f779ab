package services

import (
	"context"
	"time"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg/cache"
	"github.com/akinalp/playtube/repository"
)

// DashboardService, kanal sahibinin istatistik paneli.
//
// Dört sayının her biri ayrı aggregate sorgusu olduğu için sonuç kısa
// bir TTL ile cache'lenir — dashboard'ı yenileyen kullanıcı DB'yi
// dövmez. InvalidateStats, sayıları değiştiren yazma işlemlerinden
// sonra çağrılır.
type DashboardService interface {
	GetStats(ctx context.Context, ownerID string) (*models.ChannelStats, error)
	// ListVideos, kanal sahibinin TÜM videolarını döner — taslaklar
	// (is_published = 0) dahil. Herkese açık listelerden farkı budur:
	// sahip yayından kaldırdığı videosunu panelinde görmeye devam eder.
	ListVideos(ctx context.Context, ownerID string, q models.VideoListQuery) (*models.VideoPage, error)
	// InvalidateStats, kullanıcının cache'lenmiş istatistiklerini düşürür.
	InvalidateStats(ownerID string)
}

type dashboardService struct {
	videoRepo    repository.VideoRepository
	subRepo      repository.SubscriptionRepository
	reactionRepo repository.ReactionRepository
	statsCache   *cache.TTLCache[string, *models.ChannelStats]
}

// NewDashboardService, constructor.
func NewDashboardService(
	videoRepo repository.VideoRepository,
	subRepo repository.SubscriptionRepository,
	reactionRepo repository.ReactionRepository,
) DashboardService {
	return &dashboardService{
		videoRepo:    videoRepo,
		subRepo:      subRepo,
		reactionRepo: reactionRepo,
		statsCache:   cache.New[string, *models.ChannelStats](30*time.Second, time.Minute),
	}
}

func (s *dashboardService) GetStats(ctx context.Context, ownerID string) (*models.ChannelStats, error) {
	if stats, ok := s.statsCache.Get(ownerID); ok {
		return stats, nil
	}

	totalVideos, err := s.videoRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	totalViews, err := s.videoRepo.SumViewsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	totalSubscribers, err := s.subRepo.CountSubscribers(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	totalLikes, err := s.reactionRepo.CountLikesForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats := &models.ChannelStats{
		TotalVideos:      totalVideos,
		TotalViews:       totalViews,
		TotalSubscribers: totalSubscribers,
		TotalLikes:       totalLikes,
	}
	s.statsCache.Set(ownerID, stats)
	return stats, nil
}

func (s *dashboardService) ListVideos(ctx context.Context, ownerID string, q models.VideoListQuery) (*models.VideoPage, error) {
	q.OwnerID = ownerID
	q.IncludeUnpublished = true
	return s.videoRepo.List(ctx, q)
}

func (s *dashboardService) InvalidateStats(ownerID string) {
	s.statsCache.Delete(ownerID)
}
