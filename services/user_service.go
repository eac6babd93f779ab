package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/repository"
)

// UserService, kullanıcı profili ve kanal görünümü iş mantığı.
type UserService interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetChannelProfile, username ile kanal sayfasını döner.
	// viewerID, ziyaretçinin abone olup olmadığını hesaplamak için kullanılır
	// (anonim ziyaretçide boş string gelir, is_subscribed=false olur).
	GetChannelProfile(ctx context.Context, username, viewerID string) (*models.ChannelProfile, error)
	UpdateDetails(ctx context.Context, userID string, req *models.UpdateUserRequest) (*models.User, error)
	// UpdateAvatar/UpdateCover, yeni görseli kaydedip eskisini diskten siler.
	UpdateAvatar(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*models.User, error)
	UpdateCover(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*models.User, error)
	GetWatchHistory(ctx context.Context, userID string) ([]*models.WatchHistoryEntry, error)
}

type userService struct {
	userRepo  repository.UserRepository
	subRepo   repository.SubscriptionRepository
	videoRepo repository.VideoRepository
	media     MediaService
}

// NewUserService, constructor.
func NewUserService(
	userRepo repository.UserRepository,
	subRepo repository.SubscriptionRepository,
	videoRepo repository.VideoRepository,
	media MediaService,
) UserService {
	return &userService{
		userRepo:  userRepo,
		subRepo:   subRepo,
		videoRepo: videoRepo,
		media:     media,
	}
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetChannelProfile, kanal sayfası için kullanıcı + abonelik sayılarını toplar.
// Sayılar her istekte storage'dan hesaplanır, cache'lenmiş sayaç yoktur.
func (s *userService) GetChannelProfile(ctx context.Context, username, viewerID string) (*models.ChannelProfile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	subscribers, err := s.subRepo.CountSubscribers(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	subscribed, err := s.subRepo.CountSubscribedChannels(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID != "" && viewerID != user.ID {
		isSubscribed, err = s.subRepo.IsSubscribed(ctx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &models.ChannelProfile{
		UserSummary:      user.Summary(),
		TotalSubscribers: subscribers,
		TotalSubscribed:  subscribed,
		IsSubscribed:     isSubscribed,
	}, nil
}

// UpdateDetails, hesap alanlarını günceller (partial update).
func (s *userService) UpdateDetails(ctx context.Context, userID string, req *models.UpdateUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Username != nil {
		user.Username = *req.Username
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err // ErrAlreadyExists olabilir (username/email çakışması)
	}

	return user, nil
}

func (s *userService) UpdateAvatar(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	newURL, err := s.media.SaveImage(file, header)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateAvatar(ctx, userID, newURL); err != nil {
		s.media.Remove(newURL)
		return nil, err
	}

	// Eski avatar'ı diskten temizle — silinemese de güncelleme başarılı sayılır
	if user.AvatarURL != "" {
		s.media.Remove(user.AvatarURL)
	}

	user.AvatarURL = newURL
	return user, nil
}

func (s *userService) UpdateCover(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	newURL, err := s.media.SaveImage(file, header)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateCover(ctx, userID, newURL); err != nil {
		s.media.Remove(newURL)
		return nil, err
	}

	if user.CoverURL != nil && *user.CoverURL != "" {
		s.media.Remove(*user.CoverURL)
	}

	user.CoverURL = &newURL
	return user, nil
}

// GetWatchHistory, en son izlenenden eskiye doğru izleme geçmişini döner.
func (s *userService) GetWatchHistory(ctx context.Context, userID string) ([]*models.WatchHistoryEntry, error) {
	return s.videoRepo.GetWatchHistory(ctx, userID, 50)
}
