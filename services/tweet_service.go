package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/repository"
)

// TweetService, kanal topluluk gönderileri (tweet) iş mantığı.
//
// Tweet oluşturma da abonelere bildirim fan-out'u yapar, ancak realtime
// event üretmez — aboneler bildirimi bir sonraki bildirim listesi
// çekişinde görür.
type TweetService interface {
	// Create, yeni tweet oluşturur. imageFile opsiyoneldir (nil olabilir) —
	// varsa media store'a kaydedilir ve tweet görsel taşır.
	Create(ctx context.Context, ownerID string, req *models.CreateTweetRequest,
		imageFile multipart.File, imageHeader *multipart.FileHeader) (*models.Tweet, error)
	ListByOwner(ctx context.Context, ownerID, viewerID string) ([]*models.TweetWithReactions, error)
	// Update, içeriği ve (dosya verilmişse) görseli değiştirir.
	// Görsel değişince eskisi diskten silinir.
	Update(ctx context.Context, userID, tweetID string, req *models.UpdateTweetRequest,
		imageFile multipart.File, imageHeader *multipart.FileHeader) (*models.Tweet, error)
	Delete(ctx context.Context, userID, tweetID string) error
}

type tweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
	subRepo   repository.SubscriptionRepository
	notifRepo repository.NotificationRepository
	media     MediaService
}

// NewTweetService, constructor.
func NewTweetService(
	tweetRepo repository.TweetRepository,
	userRepo repository.UserRepository,
	subRepo repository.SubscriptionRepository,
	notifRepo repository.NotificationRepository,
	media MediaService,
) TweetService {
	return &tweetService{
		tweetRepo: tweetRepo,
		userRepo:  userRepo,
		subRepo:   subRepo,
		notifRepo: notifRepo,
		media:     media,
	}
}

func (s *tweetService) Create(ctx context.Context, ownerID string, req *models.CreateTweetRequest,
	imageFile multipart.File, imageHeader *multipart.FileHeader) (*models.Tweet, error) {

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	tweet := &models.Tweet{
		OwnerID: ownerID,
		Content: req.Content,
	}

	if imageFile != nil && imageHeader != nil {
		imageURL, err := s.media.SaveImage(imageFile, imageHeader)
		if err != nil {
			return nil, err
		}
		tweet.ImageURL = imageURL
	}

	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		// Kayıt başarısızsa diske yazılan görsel yetim kalmasın
		if tweet.ImageURL != "" {
			s.media.Remove(tweet.ImageURL)
		}
		return nil, err
	}

	if err := s.fanOutTweet(ctx, ownerID, tweet); err != nil {
		log.Printf("[tweet] notification fan-out failed for tweet %s: %v", tweet.ID, err)
	}

	return tweet, nil
}

// fanOutTweet, her abone için tweet_create bildirimi yazar.
func (s *tweetService) fanOutTweet(ctx context.Context, ownerID string, tweet *models.Tweet) error {
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

	message := fmt.Sprintf("%s posted a new tweet", owner.Username)
	notifications := make([]*models.Notification, 0, len(subscriberIDs))
	for _, subID := range subscriberIDs {
		notifications = append(notifications, &models.Notification{
			UserID:   subID,
			Type:     models.NotificationNewTweet,
			ActorID:  ownerID,
			EntityID: tweet.ID,
			Message:  message,
		})
	}

	return s.notifRepo.CreateBatch(ctx, notifications)
}

func (s *tweetService) ListByOwner(ctx context.Context, ownerID, viewerID string) ([]*models.TweetWithReactions, error) {
	return s.tweetRepo.ListByOwner(ctx, ownerID, viewerID)
}

func (s *tweetService) Update(ctx context.Context, userID, tweetID string, req *models.UpdateTweetRequest,
	imageFile multipart.File, imageHeader *multipart.FileHeader) (*models.Tweet, error) {

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet.OwnerID != userID {
		return nil, fmt.Errorf("%w: you do not own this tweet", pkg.ErrForbidden)
	}

	tweet.Content = req.Content

	// Opsiyonel yeni görsel — eskisi update başarılı olunca silinir
	oldImage := ""
	if imageFile != nil && imageHeader != nil {
		newImage, err := s.media.SaveImage(imageFile, imageHeader)
		if err != nil {
			return nil, err
		}
		oldImage = tweet.ImageURL
		tweet.ImageURL = newImage
	}

	if err := s.tweetRepo.Update(ctx, tweet); err != nil {
		if oldImage != "" {
			s.media.Remove(tweet.ImageURL) // yeni görsel yetim kaldı
		}
		return nil, err
	}

	if oldImage != "" {
		s.media.Remove(oldImage)
	}
	return tweet, nil
}

func (s *tweetService) Delete(ctx context.Context, userID, tweetID string) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet.OwnerID != userID {
		return fmt.Errorf("%w: you do not own this tweet", pkg.ErrForbidden)
	}

	if err := s.tweetRepo.Delete(ctx, tweetID); err != nil {
		return err
	}

	// Görsel diskte kalmasın — silme başarısızlığı tweet silmeyi bozmaz
	if tweet.ImageURL != "" {
		if err := s.media.Remove(tweet.ImageURL); err != nil {
			log.Printf("[tweet] failed to remove image for tweet %s: %v", tweetID, err)
		}
	}
	return nil
}
