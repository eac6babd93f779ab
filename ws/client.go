package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket bağlantı sabitleri
const (
	// writeWait: Bir mesajı yazmak için maksimum bekleme süresi.
	// Bu süre aşılırsa bağlantı kapatılır (ağ sorunu olabilir).
	writeWait = 10 * time.Second

	// pongWait: Client'ın heartbeat göndermesi için beklenen maksimum süre.
	// 3 heartbeat kaçırma = 30s × 3 = 90s.
	// Bu sürede heartbeat gelmezse client bağlantısı kopmuş sayılır.
	pongWait = 90 * time.Second

	// maxMessageSize: Client'ın gönderebileceği maksimum mesaj boyutu (byte).
	// Client → server sadece join_* ve heartbeat gönderir — küçük mesajlar yeterli.
	maxMessageSize = 4096

	// sendBufferSize: Her client'ın send channel'ının buffer boyutu.
	// Buffer doluysa (client yavaş) mesajlar kaybolur — bu durumda client disconnect edilir.
	sendBufferSize = 256
)

// Client, tek bir WebSocket bağlantısını temsil eder.
//
// Go'da WebSocket bağlantı yönetimi pattern'i:
// Her bağlantı için iki goroutine oluşturulur:
// - ReadPump: Client'dan gelen mesajları okur → join/heartbeat işler
// - WritePump: Hub'dan gelen mesajları client'a yazar
//
// Neden iki goroutine?
// gorilla/websocket aynı anda sadece bir okuma ve bir yazma işlemi destekler.
// İki ayrı goroutine kullanarak okuma ve yazma birbirini bloklamaz.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// connID: bağlantıya özel UUID. Aynı kullanıcının iki tab'ı iki ayrı
	// Client'tır — loglar ve connected event'i bunu ayırt eder.
	connID string

	// userID: token'dan çözülen kullanıcı. Boş string = anonim bağlantı.
	// Anonim client'lar video/kanal odalarına katılabilir ama kendi
	// bildirim odasına katılamaz (kimliği yok).
	userID string

	// send, client'a gönderilecek mesajların buffer'landığı Go channel'ı.
	//
	// Go channel nedir?
	// Goroutine'ler arası veri iletimi için kullanılan tipli boru (pipe).
	// `make(chan []byte, 256)` → 256 elemanlık buffer'lı bir byte dizisi kanalı.
	// Hub mesaj göndermek istediğinde `client.send <- data` yapar,
	// WritePump `data := <-client.send` ile okur.
	send chan []byte
	mu   sync.Mutex // conn.WriteMessage çağrılarını korur

	// sendMu + sendClosed: send channel'ının kapatılmasını gönderimlerle
	// senkronize eder. Hub client'ı çıkarırken (yavaş client, shutdown)
	// ReadPump hâlâ heartbeat ack gönderiyor olabilir — kapalı channel'a
	// gönderim process'i panic'letir. Bu yüzden close sadece closeSend()
	// üzerinden, gönderim sadece trySend() üzerinden yapılır.
	sendMu     sync.Mutex
	sendClosed bool
}

// closeSend, send channel'ını kapatır. İdempotent — ikinci çağrı no-op.
// Sadece Hub çağırır (removeClient, Shutdown).
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.sendClosed {
		return
	}
	c.sendClosed = true
	close(c.send)
}

// trySend, data'yı send buffer'ına eklemeye çalışır.
// Kapanmış client'ta sessiz no-op'tur (true döner — yapılacak iş yok).
// Buffer doluysa false döner — çağıran client'ı kopmuş sayar.
func (c *Client) trySend(data []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.sendClosed {
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// UserID, client'ın kimliğini döner (boş string = anonim).
func (c *Client) UserID() string {
	return c.userID
}

// ReadPump, WebSocket bağlantısından gelen mesajları okur ve işler.
//
// Bu fonksiyon bir goroutine olarak çalışır — bağlantı kapanana kadar döngüde kalır.
// Bağlantı kapandığında Hub'dan çıkış yapar ve kaynakları temizler.
func (c *Client) ReadPump() {
	// defer: Fonksiyon bittiğinde (return veya panic) çalışır.
	// Bağlantı kapandığında client'ı Hub'dan çıkar ve WS bağlantısını kapat.
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)

	// SetReadDeadline: Bu süre içinde mesaj gelmezse Read hata verir.
	// Her heartbeat geldiğinde deadline yenilenir.
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("[ws] failed to set read deadline for conn %s: %v", c.connID, err)
		return
	}

	for {
		_, rawMessage, err := c.conn.ReadMessage()
		if err != nil {
			// Bağlantı kapandı veya hata oluştu — ReadPump sonlanır.
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] unexpected close for conn %s: %v", c.connID, err)
			}
			return
		}

		// Gelen mesajı parse et
		var event Event
		if err := json.Unmarshal(rawMessage, &event); err != nil {
			log.Printf("[ws] invalid message from conn %s: %v", c.connID, err)
			continue
		}

		c.handleEvent(event)
	}
}

// handleEvent, client'dan gelen event'leri türüne göre işler.
func (c *Client) handleEvent(event Event) {
	switch event.Op {
	case OpHeartbeat:
		// Heartbeat geldi — deadline'ı yenile ve ack gönder.
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("[ws] failed to set read deadline for conn %s: %v", c.connID, err)
			return
		}
		c.sendEvent(Event{Op: OpHeartbeatAck})

	case OpJoinVideo:
		c.handleJoin(event, VideoRoom)

	case OpJoinChannel:
		c.handleJoin(event, ChannelRoom)

	case OpJoinNotification:
		// Bildirim odası kişiseldir — anonim client veya başkasının
		// odasına katılma isteği reddedilir. Payload'daki id yoksayılır,
		// her zaman token'daki kimlik kullanılır.
		if c.userID == "" {
			c.sendEvent(Event{Op: OpSocketError, Data: SocketErrorData{
				Message: "authentication required to join notification room",
			}})
			return
		}
		c.hub.JoinRoom(c, NotificationRoom(c.userID))

	default:
		log.Printf("[ws] unknown op from conn %s: %s", c.connID, event.Op)
	}
}

// handleJoin, join_video/join_channel event'lerini işler.
// roomFn, entity id'den oda adı üretir (VideoRoom veya ChannelRoom).
//
// json.Marshal + json.Unmarshal neden?
// event.Data tipi `any` (interface{}), doğrudan cast edemeyiz.
// JSON'a çevirip tekrar parse etmek en güvenli yöntem.
func (c *Client) handleJoin(event Event, roomFn func(string) string) {
	dataBytes, err := json.Marshal(event.Data)
	if err != nil {
		return
	}

	var data JoinData
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return
	}

	if data.ID == "" {
		c.sendEvent(Event{Op: OpSocketError, Data: SocketErrorData{
			Message: "join requires an id",
		}})
		return
	}

	c.hub.JoinRoom(c, roomFn(data.ID))
}

// sendEvent, client'a tek bir event gönderir.
func (c *Client) sendEvent(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal event for conn %s: %v", c.connID, err)
		return
	}

	if !c.trySend(data) {
		// Buffer dolu — client muhtemelen donmuş, bağlantıyı kapat
		log.Printf("[ws] send buffer full for conn %s, dropping connection", c.connID)
		c.hub.unregister <- c
	}
}

// WritePump, Hub'dan gelen mesajları WebSocket bağlantısına yazar.
//
// Bu fonksiyon bir goroutine olarak çalışır.
// send channel'dan mesaj bekler ve WS'e yazar.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for {
		message, ok := <-c.send
		if !ok {
			// Channel kapatıldı — Hub client'ı çıkardı
			c.writeMessage(websocket.CloseMessage, nil)
			return
		}

		if err := c.writeMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// writeMessage, WebSocket'e mesaj yazar (mutex ile korunur).
// gorilla/websocket conn'a aynı anda birden fazla yazma YASAK —
// bu yüzden mutex ile koruyoruz.
func (c *Client) writeMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}
