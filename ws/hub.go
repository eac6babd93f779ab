package ws

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
)

// EventPublisher, service katmanının WebSocket event'leri yayınlamak için
// kullandığı interface.
//
// Dependency Inversion: Service'ler Hub'ın concrete struct'ına değil,
// bu interface'e bağımlıdır. Böylece:
// 1. Service test edilirken mock EventPublisher kullanılabilir
// 2. Hub implementasyonu değişse bile service kodu etkilenmez
type EventPublisher interface {
	// EmitToRoom, event'i verilen odaya katılmış tüm client'lara gönderir.
	// Oda boşsa sessiz no-op: hata dönmez, kimseye bir şey iletilmez.
	EmitToRoom(room string, event Event)
	// EmitToUser, event'i kullanıcının bildirim odasına gönderir.
	// NotificationRoom(userID) için kısayoldur.
	EmitToUser(userID string, event Event)
}

// Hub, tüm WebSocket bağlantılarını ve odalarını yöneten merkezi yapıdır
// (Observer pattern).
//
// Observer pattern nedir?
// Bir "subject" (Hub) birden fazla "observer"ı (Client) takip eder.
// Bir event olduğunda Hub, ilgili odadaki observer'lara bildirim gönderir.
// Video sayfasındaki herkese yeni yorumun anında görünmesi bu pattern'dir.
//
// Go channel nedir? (register, unregister)
// Goroutine'ler arası güvenli iletişim sağlayan yapılar.
// Hub.Run() goroutine'i bu channel'lardan `select` ile okur:
// - register channel'dan yeni client gelirse → clients set'e ekle
// - unregister channel'dan client gelirse → set'ten ve tüm odalardan çıkar
type Hub struct {
	// clients: bağlı tüm client'ların set'i.
	// map[*Client]bool — Go'da set yoktur, map[*Client]bool kullanılır.
	// bool değeri her zaman true'dur — sadece varlık kontrolü için.
	clients map[*Client]bool

	// rooms: oda adı → o odaya katılmış client set'i.
	// Oda adı "<kind>_<entityId>" formatındadır (ws.VideoRoom vb. üretir).
	// Bir client birden fazla odada olabilir, bir odada birden fazla
	// client olabilir (many-to-many).
	rooms map[string]map[*Client]bool

	// mu: clients ve rooms map'lerini koruyan read-write mutex.
	// Emit okuma ağırlıklıdır (RLock), join/leave yazmadır (Lock).
	mu sync.RWMutex

	// register/unregister: Client giriş/çıkış sinyalleri.
	register   chan *Client
	unregister chan *Client

	// seq: Her outbound event'e verilen artan sayaç.
	// atomic.Int64: Birden fazla goroutine'in güvenle okuyup yazabildiği sayı.
	seq atomic.Int64
}

// NewHub, yeni bir Hub oluşturur.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run, Hub'ın ana event loop'udur. main.go'da `go hub.Run()` ile başlatılır.
//
// select nedir?
// Birden fazla channel'ı aynı anda dinler.
// Hangi channel'dan veri gelirse o case çalışır.
// Hiçbirinden gelmezse bekler (blocking).
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

// addClient, yeni bir client'ı Hub'a ekler.
// Client henüz hiçbir odada değildir — odalara join_* event'leri ile katılır.
func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	if client.userID == "" {
		log.Printf("[ws] anonymous client connected: conn=%s (total: %d)",
			client.connID, len(h.clients))
	} else {
		log.Printf("[ws] client connected: user=%s conn=%s (total: %d)",
			client.userID, client.connID, len(h.clients))
	}
}

// removeClient, bir client'ı Hub'dan ve katıldığı TÜM odalardan çıkarır,
// send channel'ını kapatır.
//
// Oda temizliği ve client silme aynı lock altında yapılır — başka bir
// goroutine aradaki tutarsız durumu (client var ama odalarda hayalet
// üyelik) asla göremez.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return // Zaten çıkarılmış (çifte unregister)
	}

	delete(h.clients, client)
	client.closeSend()

	// Client'ın üye olduğu tüm odalardan çıkar, boşalan odaları sil
	for room, members := range h.rooms {
		if _, in := members[client]; in {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}

	log.Printf("[ws] client disconnected: conn=%s (total: %d)", client.connID, len(h.clients))
}

// JoinRoom, client'ı verilen odaya ekler.
//
// İdempotent: aynı odaya ikinci kez katılmak no-op'tur — set semantiği
// sayesinde client oda event'lerini asla çift almaz.
func (h *Hub) JoinRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Bağlantı kapanırken gelen geç join'i yoksay
	if _, ok := h.clients[client]; !ok {
		return
	}

	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]bool)
		h.rooms[room] = members
	}
	if members[client] {
		return // Zaten üye
	}
	members[client] = true

	log.Printf("[ws] conn=%s joined room=%s (members: %d)", client.connID, room, len(members))
}

// LeaveRoom, client'ı verilen odadan çıkarır. Oda boşalırsa oda silinir.
func (h *Hub) LeaveRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// EmitToRoom, event'i verilen odadaki tüm client'lara gönderir.
//
// Fire-and-forget: oda yoksa veya boşsa sessizce döner.
// Yavaş client'ın send buffer'ı doluysa event o client için atlanır ve
// client kapatılmak üzere işaretlenir — tek yavaş izleyici tüm odanın
// yayınını bloke edemez (at-most-once teslimat).
func (h *Hub) EmitToRoom(room string, event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal room event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	members, ok := h.rooms[room]
	if !ok {
		return // Oda boş — sessiz no-op
	}

	for client := range members {
		if !client.trySend(data) {
			// Buffer dolu — bu client yavaş, kapat
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

// EmitToUser, event'i kullanıcının bildirim odasına gönderir.
func (h *Hub) EmitToUser(userID string, event Event) {
	h.EmitToRoom(NotificationRoom(userID), event)
}

// RoomSize, bir odadaki üye sayısını döner (test ve debug için).
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Shutdown, tüm client bağlantılarını kapatır (graceful shutdown).
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.closeSend()
	}
	h.clients = make(map[*Client]bool)
	h.rooms = make(map[string]map[*Client]bool)
	log.Println("[ws] hub shut down, all connections closed")
}
