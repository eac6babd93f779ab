package repository

import (
	"context"

	"github.com/akinalp/playtube/models"
)

// SubscriptionRepository, abonelik veritabanı işlemleri için interface.
type SubscriptionRepository interface {
	// Toggle, kullanıcının kanala aboneliğini değiştirir ve yeni durumu
	// + güncel abone sayısını döner. Tek transaction'da çalışır.
	Toggle(ctx context.Context, subscriberID, channelID string) (*models.SubscriptionToggleResult, error)
	IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error)
	// CountSubscribers, kanalın abone sayısını döner.
	CountSubscribers(ctx context.Context, channelID string) (int, error)
	// CountSubscribedChannels, kullanıcının abone olduğu kanal sayısını döner.
	CountSubscribedChannels(ctx context.Context, subscriberID string) (int, error)
	ListSubscribers(ctx context.Context, channelID string) ([]*models.ChannelSubscriber, error)
	ListSubscribedChannels(ctx context.Context, subscriberID string) ([]*models.SubscribedChannel, error)
	// ListSubscriberIDs, video publish fan-out'u için sadece ID listesi döner.
	ListSubscriberIDs(ctx context.Context, channelID string) ([]string, error)
}
