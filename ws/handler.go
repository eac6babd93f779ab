package ws

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/akinalp/playtube/models"
)

// IdentityResolver, WebSocket handler'ın kimlik çözümlemesi için kullandığı interface.
//
// Neden services.AuthService yerine kendi interface'imizi tanımlıyoruz?
// Circular dependency'yi önlemek için:
// - services paketi ws.EventPublisher'ı kullanıyor (emit için)
// - ws paketi services.AuthService'i kullansaydı → ws → services → ws döngüsü oluşurdu
//
// Interface Segregation Principle (ISP):
// WS handler'ın AuthService'in tüm metodlarına ihtiyacı yok.
// Sadece ValidateAccessToken yeterli. main.go'da authService bu interface'i
// otomatik olarak karşılar (Go'da implicit interface).
type IdentityResolver interface {
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// upgrader, HTTP bağlantısını WebSocket bağlantısına yükseltir.
//
// WebSocket Upgrade nedir?
// WebSocket, normal HTTP bağlantısı olarak başlar ve "upgrade" ile
// kalıcı, çift yönlü (bidirectional) bir bağlantıya dönüşür.
// HTTP: istek → yanıt → bağlantı kapanır
// WebSocket: bağlantı açık kalır, her iki taraf istediği zaman mesaj gönderebilir
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin: Production'da domain kontrolü yapılmalı.
	// Şimdilik tüm origin'lere izin veriyoruz (development için).
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler, WebSocket bağlantı isteklerini işleyen HTTP handler'ı.
type Handler struct {
	hub      *Hub
	resolver IdentityResolver
}

// NewHandler, yeni bir WebSocket handler oluşturur.
func NewHandler(hub *Hub, resolver IdentityResolver) *Handler {
	return &Handler{
		hub:      hub,
		resolver: resolver,
	}
}

// HandleConnection, HTTP bağlantısını WebSocket'e yükseltir ve client'ı Hub'a kaydeder.
//
// Kimlik çözümleme:
// Token accessToken cookie'sinden veya ?token= query parameter'ından okunur
// (tarayıcı WS bağlantısında özel header gönderemez).
// Token YOKSA veya GEÇERSİZSE bağlantı reddedilmez — anonim olarak devam eder.
// Video izlemek login gerektirmez; anonim izleyici de yorum/sayaç
// güncellemelerini canlı almalıdır. Kimlik sadece bildirim odası için gerekir.
//
// Flow:
// 1. Cookie/query'den token al, varsa doğrula (başarısızsa anonim)
// 2. HTTP → WebSocket upgrade
// 3. Client oluştur, Hub'a kaydet
// 4. connected event'i gönder
// 5. ReadPump ve WritePump goroutine'lerini başlat
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	// 1. Kimliği çöz — başarısızlık bağlantıyı engellemez
	userID := h.resolveIdentity(r)

	// 2. HTTP → WebSocket upgrade
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	// 3. Client oluştur
	client := &Client{
		hub:    h.hub,
		conn:   conn,
		connID: uuid.NewString(),
		userID: userID,
		send:   make(chan []byte, sendBufferSize),
	}

	// 4. Hub'a kaydet
	h.hub.register <- client

	// 5. İlk event: connected — client kimlik durumunu buradan öğrenir
	message := "Unauthenticated Socket Connected"
	if userID != "" {
		message = "Authenticated Socket Connected"
	}
	client.sendEvent(Event{
		Op: OpConnected,
		Data: ConnectedData{
			ConnectionID: client.connID,
			UserID:       userID,
			Message:      message,
		},
	})

	// 6. Goroutine'leri başlat
	//
	// WritePump ayrı goroutine'de, ReadPump mevcut goroutine'de çalışır.
	// ReadPump mevcut goroutine'de çalışmalı — aksi halde bu fonksiyon hemen
	// döner ve HTTP handler sonlanır. ReadPump bağlantı kapanana kadar bloklar.
	go client.WritePump()
	client.ReadPump() // Bu satır bağlantı kapanana kadar bloklar
}

// resolveIdentity, request'ten JWT çözer. Başarısızlıkta boş string (anonim).
//
// Öncelik: accessToken cookie → token query parameter.
// Cookie öncelikli — tarayıcı client'ı login sonrası cookie'yi otomatik taşır.
func (h *Handler) resolveIdentity(r *http.Request) string {
	var token string
	if cookie, err := r.Cookie("accessToken"); err == nil {
		token = cookie.Value
	}
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		return ""
	}

	claims, err := h.resolver.ValidateAccessToken(token)
	if err != nil {
		// Geçersiz/süresi dolmuş token → anonim degrade, bağlantı reddedilmez
		log.Printf("[ws] token validation failed, continuing anonymous: %v", err)
		return ""
	}
	return claims.UserID
}
