// Package ws, WebSocket bağlantı yönetimi ve gerçek zamanlı event dağıtımını sağlar.
//
// Mimari:
// - Hub: Tüm bağlantıları ve odaları yöneten merkezi yapı (Observer pattern)
// - Client: Her WebSocket bağlantısını temsil eder
// - Event: Client-server arası iletilen mesaj formatı
// - Room: "<kind>_<entityId>" formatında abonelik odası (video_abc123 gibi)
//
// Event akışı:
// 1. Kullanıcı bir videoya yorum yazar → HTTP POST → Service → DB kayıt
// 2. Service, Hub'ın EmitToRoom metodunu çağırır (oda: video_<id>)
// 3. Hub, event'i o odaya katılmış tüm client'lara iletir
// 4. Her client'ın WritePump'ı event'i WebSocket'e yazar
// 5. Frontend event'i alır ve UI'ı günceller (yorum listesi, sayaçlar)
//
// İletim fire-and-forget'tır: oda boşsa event sessizce düşer,
// yavaş client'ın dolu buffer'ına yazılamayan event atlanır (at-most-once).
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op (operation): Event türü — "comment_add", "heartbeat" vb.
// Data: Event'e özgü payload — yorum objesi, sayaçlar vb.
// Seq (sequence number): Her outbound event'e verilen artan sayı.
//   Frontend eksik event tespit etmek için seq'i takip eder.
//   Örnek: seq 5'ten sonra seq 7 gelirse, 6 kaybolmuş demektir.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// ────────────────────────────────────────────
// Operation sabitleri
// ────────────────────────────────────────────

// Client → Server operasyonları
const (
	OpHeartbeat        = "heartbeat"         // Client her 30sn'de gönderir — "hâlâ bağlıyım" sinyali
	OpJoinVideo        = "join_video"        // Bir video odasına katıl (izleme sayfası açıldı)
	OpJoinChannel      = "join_channel"      // Bir kanal odasına katıl (kanal sayfası açıldı)
	OpJoinNotification = "join_notification" // Kendi bildirim odana katıl
)

// Server → Client operasyonları
const (
	OpConnected    = "connected"     // Bağlantı kurulduğunda ilk gönderilen — kimlik bilgisi
	OpHeartbeatAck = "heartbeat_ack" // Heartbeat'e yanıt — "seni duydum"
	OpSocketError  = "socket_error"  // Beklenmeyen bağlantı hatası bildirimi

	OpCommentAdd    = "comment_add"    // Videoya yeni yorum eklendi
	OpCommentUpdate = "comment_update" // Yorum düzenlendi
	OpCommentDelete = "comment_delete" // Yorum silindi

	OpReactionAdd    = "reaction_add"    // Like/dislike eklendi veya değişti
	OpReactionRemove = "reaction_remove" // Like/dislike kaldırıldı (toggle-off)

	OpSubscriberAdd    = "subscriber_add"    // Kanala yeni abone
	OpSubscriberRemove = "subscriber_remove" // Abonelikten çıkıldı

	OpVideoPublish = "video_publish" // Abone olunan kanal yeni video yayınladı
)

// Room kind önekleri.
// Oda ismi her zaman "<kind>_<entityId>" formatındadır.
const (
	roomKindVideo        = "video"
	roomKindChannel      = "channel"
	roomKindNotification = "notification"
)

// VideoRoom, bir videonun izleyici odasının adını döner (ör: "video_abc123").
func VideoRoom(videoID string) string {
	return roomKindVideo + "_" + videoID
}

// ChannelRoom, bir kanal sayfasının odasının adını döner (ör: "channel_abc123").
func ChannelRoom(channelID string) string {
	return roomKindChannel + "_" + channelID
}

// NotificationRoom, bir kullanıcının kişisel bildirim odasının adını döner.
func NotificationRoom(userID string) string {
	return roomKindNotification + "_" + userID
}

// JoinData, join_* event'lerinin Client → Server payload'ı.
type JoinData struct {
	ID string `json:"id"`
}

// ConnectedData, bağlantı kurulduğunda client'a gönderilen ilk event'in payload'ı.
//
// UserID boşsa bağlantı anonimdir — token yoktu veya geçersizdi.
// Anonim client'lar oda event'lerini alabilir ama kişisel bildirim
// odasına katılamaz.
type ConnectedData struct {
	ConnectionID string `json:"connection_id"`
	UserID       string `json:"user_id,omitempty"`
	Message      string `json:"message"`
}

// SocketErrorData, socket_error event'inin payload'ı.
type SocketErrorData struct {
	Message string `json:"message"`
}

// CommentEventData, comment_* event'lerinin payload'ı.
// Comment alanı any — ws paketinin models'a bağımlılığını kırmak için
// service katmanı serialize edilebilir herhangi bir obje geçer.
type CommentEventData struct {
	Comment       any    `json:"comment"`
	VideoID       string `json:"video_id"`
	TotalComments int    `json:"total_comments"`
}

// ReactionEventData, reaction_add/reaction_remove event'lerinin payload'ı.
// Sayaçlar her toggle'da storage'dan yeniden hesaplanır — in-memory
// aggregate tutulmaz, event sayaçları her zaman doğrudur.
type ReactionEventData struct {
	TargetType  string `json:"target_type"` // "video", "comment", "tweet"
	TargetID    string `json:"target_id"`
	ActorID     string `json:"actor_id"`
	Kind        string `json:"kind"` // "like" veya "dislike"
	TotalLike   int    `json:"total_like"`
	TotalUnlike int    `json:"total_unlike"`
}

// SubscriptionEventData, subscriber_add/subscriber_remove event'lerinin payload'ı.
type SubscriptionEventData struct {
	ChannelID        string `json:"channel_id"`
	ActorID          string `json:"actor_id"`
	TotalSubscribers int    `json:"total_subscribers"`
}

// VideoPublishData, video_publish event'inin payload'ı.
// Abonenin bildirim odasına gönderilir — Video alanı frontend'in
// bildirimi fetch'siz gösterebilmesi içindir.
type VideoPublishData struct {
	Notification any `json:"notification"`
	Video        any `json:"video"`
}
