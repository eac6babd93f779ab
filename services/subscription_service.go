package services

import (
	"context"
	"fmt"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/repository"
	"github.com/akinalp/playtube/ws"
)

// SubscriptionService, abonelik iş mantığı.
//
// Toggle sonrası emit edilen abone sayısı her zaman storage'dan
// yeniden sayılır (delta değil snapshot) — in-memory sayaç drift'i
// olmaz. Event, kanalın ChannelRoom'una gider: kanalın hangi
// sayfasından toggle yapılırsa yapılsın, o kanalı izleyen herkes
// aynı güncel sayıyı görür.
type SubscriptionService interface {
	// Toggle, aboneliği değiştirir. Kendi kanalına abone olunamaz.
	Toggle(ctx context.Context, subscriberID, channelID string) (*models.SubscriptionToggleResult, error)
	ListSubscribers(ctx context.Context, channelID string) ([]*models.ChannelSubscriber, error)
	ListSubscribedChannels(ctx context.Context, subscriberID string) ([]*models.SubscribedChannel, error)
}

type subscriptionService struct {
	subRepo   repository.SubscriptionRepository
	userRepo  repository.UserRepository
	publisher ws.EventPublisher
}

// NewSubscriptionService, constructor.
func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	publisher ws.EventPublisher,
) SubscriptionService {
	return &subscriptionService{
		subRepo:   subRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

func (s *subscriptionService) Toggle(ctx context.Context, subscriberID, channelID string) (*models.SubscriptionToggleResult, error) {
	if subscriberID == channelID {
		return nil, fmt.Errorf("%w: you cannot subscribe to your own channel", pkg.ErrBadRequest)
	}

	// Kanal (user) gerçekten var mı?
	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		return nil, err
	}

	result, err := s.subRepo.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return nil, err
	}

	op := ws.OpSubscriberAdd
	if !result.Subscribed {
		op = ws.OpSubscriberRemove
	}
	s.publisher.EmitToRoom(ws.ChannelRoom(channelID), ws.Event{
		Op: op,
		Data: ws.SubscriptionEventData{
			ChannelID:        channelID,
			ActorID:          subscriberID,
			TotalSubscribers: result.TotalSubscribers,
		},
	})

	return result, nil
}

func (s *subscriptionService) ListSubscribers(ctx context.Context, channelID string) ([]*models.ChannelSubscriber, error) {
	return s.subRepo.ListSubscribers(ctx, channelID)
}

func (s *subscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]*models.SubscribedChannel, error) {
	return s.subRepo.ListSubscribedChannels(ctx, subscriberID)
}
