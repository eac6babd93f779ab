package models

import "time"

// NotificationType, bildirimin tetikleyicisi.
type NotificationType string

// İzin verilen NotificationType değerleri.
const (
	NotificationVideoPublish NotificationType = "video_publish"
	NotificationNewTweet     NotificationType = "tweet_create"
)

// Notification, bir kullanıcıya düşen bildirimi temsil eder.
//
// Video yayınlandığında her abone için bir satır oluşturulur (fan-out
// on write) ve aynı anda notification_<userID> odasına realtime
// yayınlanır. Realtime iletim at-most-once'tır — offline kullanıcı
// bildirimi bu tablodan okur.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	ActorID   string           `json:"actor_id"`
	EntityID  string           `json:"entity_id"` // Türe göre video veya tweet id'si
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
	Actor     *UserSummary     `json:"actor,omitempty"`
}

// NotificationPage, sayfalanmış bildirim listesi.
type NotificationPage struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int             `json:"unread_count"`
	Page          int             `json:"page"`
	Limit         int             `json:"limit"`
}
