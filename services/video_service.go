package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/repository"
	"github.com/akinalp/playtube/ws"
)

// VideoService, video yayınlama ve izleme iş mantığı.
type VideoService interface {
	// Publish, videoyu ve thumbnail'i kaydeder, video kaydını oluşturur
	// ve tüm abonelere bildirim fan-out'u yapar.
	Publish(ctx context.Context, ownerID string, req *models.PublishVideoRequest,
		videoFile multipart.File, videoHeader *multipart.FileHeader,
		thumbFile multipart.File, thumbHeader *multipart.FileHeader) (*models.Video, error)
	// GetByID, izleme sayfası için videoyu reaction/abonelik durumuyla döner.
	// İzlenme sayacını artırır, giriş yapmış izleyicinin geçmişine yazar.
	GetByID(ctx context.Context, videoID, viewerID string) (*models.VideoWithReactions, error)
	List(ctx context.Context, q models.VideoListQuery) (*models.VideoPage, error)
	Update(ctx context.Context, userID, videoID string, req *models.UpdateVideoRequest,
		thumbFile multipart.File, thumbHeader *multipart.FileHeader) (*models.Video, error)
	Delete(ctx context.Context, userID, videoID string) error
	// TogglePublish, videoyu yayından kaldırır / tekrar yayınlar.
	TogglePublish(ctx context.Context, userID, videoID string) (bool, error)
	ListLikedVideos(ctx context.Context, userID string) ([]*models.Video, error)
}

type videoService struct {
	videoRepo    repository.VideoRepository
	userRepo     repository.UserRepository
	reactionRepo repository.ReactionRepository
	subRepo      repository.SubscriptionRepository
	notifRepo    repository.NotificationRepository
	media        MediaService
	publisher    ws.EventPublisher
}

// NewVideoService, constructor.
func NewVideoService(
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
	reactionRepo repository.ReactionRepository,
	subRepo repository.SubscriptionRepository,
	notifRepo repository.NotificationRepository,
	media MediaService,
	publisher ws.EventPublisher,
) VideoService {
	return &videoService{
		videoRepo:    videoRepo,
		userRepo:     userRepo,
		reactionRepo: reactionRepo,
		subRepo:      subRepo,
		notifRepo:    notifRepo,
		media:        media,
		publisher:    publisher,
	}
}

// Publish, video yayınlama akışının tamamı:
//  1. Form validation
//  2. Video + thumbnail dosyalarını media store'a yaz
//  3. DB'ye video kaydı (yayında olarak)
//  4. Abonelere bildirim fan-out (DB satırları + realtime event)
func (s *videoService) Publish(ctx context.Context, ownerID string, req *models.PublishVideoRequest,
	videoFile multipart.File, videoHeader *multipart.FileHeader,
	thumbFile multipart.File, thumbHeader *multipart.FileHeader) (*models.Video, error) {

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	videoURL, err := s.media.SaveVideo(videoFile, videoHeader)
	if err != nil {
		return nil, err
	}

	thumbURL, err := s.media.SaveImage(thumbFile, thumbHeader)
	if err != nil {
		s.media.Remove(videoURL)
		return nil, err
	}

	video := &models.Video{
		OwnerID:      ownerID,
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbURL,
		Duration:     models.FormatDuration(req.DurationSeconds),
		IsPublished:  true,
	}
	if req.CategoryID != "" {
		video.CategoryID = &req.CategoryID
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		s.media.Remove(videoURL)
		s.media.Remove(thumbURL)
		return nil, err
	}

	// Fan-out, publish'in başarısını etkilemez — hata sadece loglanır.
	// Video zaten yayında; bildirim eksikliği kullanıcıyı bloklamaz.
	if err := s.fanOutPublish(ctx, ownerID, video); err != nil {
		log.Printf("[video] publish fan-out failed for video %s: %v", video.ID, err)
	}

	return video, nil
}

// fanOutPublish, her abone için bildirim satırı yazar ve bildirim
// odalarına video_publish event'i gönderir.
func (s *videoService) fanOutPublish(ctx context.Context, ownerID string, video *models.Video) error {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return err
	}

	subscriberIDs, err := s.subRepo.ListSubscriberIDs(ctx, ownerID)
	if err != nil {
		return err
	}
	if len(subscriberIDs) == 0 {
		return nil
	}

	message := fmt.Sprintf("%s published a new video: %s", owner.Username, video.Title)
	notifications := make([]*models.Notification, 0, len(subscriberIDs))
	for _, subID := range subscriberIDs {
		notifications = append(notifications, &models.Notification{
			UserID:   subID,
			Type:     models.NotificationVideoPublish,
			ActorID:  ownerID,
			EntityID: video.ID,
			Message:  message,
		})
	}

	if err := s.notifRepo.CreateBatch(ctx, notifications); err != nil {
		return err
	}

	// Realtime iletim: online aboneler anında görür, offline'lar
	// tablodan okur. Odası boş olan kullanıcı için emit sessiz no-op.
	actorSummary := owner.Summary()
	for _, n := range notifications {
		n.Actor = &actorSummary
		s.publisher.EmitToUser(n.UserID, ws.Event{
			Op: ws.OpVideoPublish,
			Data: ws.VideoPublishData{
				Notification: n,
				Video:        video,
			},
		})
	}

	return nil
}

// GetByID, izleme sayfasının tek sorgu noktası.
// Her çağrı bir izlenme sayılır; giriş yapmış izleyici geçmişe de yazılır.
func (s *videoService) GetByID(ctx context.Context, videoID, viewerID string) (*models.VideoWithReactions, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if err := s.videoRepo.IncrementViews(ctx, videoID); err != nil {
		return nil, err
	}
	video.Views++

	if viewerID != "" {
		if err := s.videoRepo.RecordWatch(ctx, viewerID, videoID); err != nil {
			return nil, err
		}
	}

	counts, err := s.reactionRepo.Counts(ctx, models.TargetVideo, videoID)
	if err != nil {
		return nil, err
	}

	result := &models.VideoWithReactions{
		Video:       *video,
		TotalLike:   counts.TotalLike,
		TotalUnlike: counts.TotalUnlike,
	}

	if viewerID != "" {
		reaction, err := s.reactionRepo.Get(ctx, models.TargetVideo, videoID, viewerID)
		if err != nil && !errors.Is(err, pkg.ErrNotFound) {
			return nil, err
		}
		if reaction != nil {
			result.IsLiked = reaction.Kind == models.ReactionLike
			result.IsDisliked = reaction.Kind == models.ReactionDislike
		}

		if viewerID != video.OwnerID {
			subscribed, err := s.subRepo.IsSubscribed(ctx, viewerID, video.OwnerID)
			if err != nil {
				return nil, err
			}
			result.IsSubscribed = subscribed
		}
	}

	return result, nil
}

func (s *videoService) List(ctx context.Context, q models.VideoListQuery) (*models.VideoPage, error) {
	return s.videoRepo.List(ctx, q)
}

func (s *videoService) Update(ctx context.Context, userID, videoID string, req *models.UpdateVideoRequest,
	thumbFile multipart.File, thumbHeader *multipart.FileHeader) (*models.Video, error) {

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	video, err := s.getOwnedVideo(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		video.Title = *req.Title
	}
	if req.Description != nil {
		video.Description = *req.Description
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			video.CategoryID = nil
		} else {
			video.CategoryID = req.CategoryID
		}
	}

	// Opsiyonel yeni thumbnail
	oldThumb := ""
	if thumbFile != nil && thumbHeader != nil {
		newThumb, err := s.media.SaveImage(thumbFile, thumbHeader)
		if err != nil {
			return nil, err
		}
		oldThumb = video.ThumbnailURL
		video.ThumbnailURL = newThumb
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		if video.ThumbnailURL != oldThumb && oldThumb != "" {
			s.media.Remove(video.ThumbnailURL)
		}
		return nil, err
	}

	if oldThumb != "" {
		s.media.Remove(oldThumb)
	}

	return video, nil
}

func (s *videoService) Delete(ctx context.Context, userID, videoID string) error {
	video, err := s.getOwnedVideo(ctx, userID, videoID)
	if err != nil {
		return err
	}

	if err := s.videoRepo.Delete(ctx, videoID); err != nil {
		return err
	}

	// DB kaydı gitti — disk temizliği başarısız olsa da silme tamamlanmıştır
	s.media.Remove(video.VideoURL)
	s.media.Remove(video.ThumbnailURL)

	return nil
}

func (s *videoService) TogglePublish(ctx context.Context, userID, videoID string) (bool, error) {
	if _, err := s.getOwnedVideo(ctx, userID, videoID); err != nil {
		return false, err
	}
	return s.videoRepo.TogglePublish(ctx, videoID)
}

func (s *videoService) ListLikedVideos(ctx context.Context, userID string) ([]*models.Video, error) {
	return s.reactionRepo.ListLikedVideos(ctx, userID, 50)
}

// getOwnedVideo, videoyu getirir ve sahiplik kontrolü yapar.
// Sahip olmayan kullanıcı ErrForbidden alır.
func (s *videoService) getOwnedVideo(ctx context.Context, userID, videoID string) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != userID {
		return nil, fmt.Errorf("%w: you do not own this video", pkg.ErrForbidden)
	}
	return video, nil
}
