package models

import "time"

// Subscription, bir kullanıcının bir kanala aboneliğini temsil eder.
// Primary key (subscriber_id, channel_id) çiftidir — aynı kanala
// iki kez abone olunamaz.
type Subscription struct {
	SubscriberID string    `json:"subscriber_id"`
	ChannelID    string    `json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// SubscriptionToggleResult, abonelik toggle işleminin sonucu.
// Subscribed=true → abone olundu, false → abonelikten çıkıldı.
// TotalSubscribers her toggle'da storage'dan yeniden sayılır.
type SubscriptionToggleResult struct {
	Subscribed       bool `json:"subscribed"`
	TotalSubscribers int  `json:"total_subscribers"`
}

// SubscribedChannel, "abone olduğum kanallar" listesindeki bir satır.
type SubscribedChannel struct {
	Channel          UserSummary `json:"channel"`
	TotalSubscribers int         `json:"total_subscribers"`
	SubscribedAt     time.Time   `json:"subscribed_at"`
}

// ChannelSubscriber, bir kanalın abone listesindeki bir satır.
type ChannelSubscriber struct {
	Subscriber   UserSummary `json:"subscriber"`
	SubscribedAt time.Time   `json:"subscribed_at"`
}
