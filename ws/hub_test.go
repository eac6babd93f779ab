package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient, conn'suz bir client üretir — emit testlerinde sadece
// send channel'ı kullanılır, gerçek WebSocket bağlantısı gerekmez.
func newTestClient(hub *Hub, connID, userID string, bufSize int) *Client {
	return &Client{
		hub:    hub,
		connID: connID,
		userID: userID,
		send:   make(chan []byte, bufSize),
	}
}

func recvEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data := <-c.send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestJoinRoomIdempotent(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "c1", "u1", 8)
	hub.addClient(client)

	room := VideoRoom("v1")
	hub.JoinRoom(client, room)
	hub.JoinRoom(client, room)

	assert.Equal(t, 1, hub.RoomSize(room))

	hub.EmitToRoom(room, Event{Op: OpCommentAdd})

	event := recvEvent(t, client)
	assert.Equal(t, OpCommentAdd, event.Op)
	assert.Equal(t, int64(1), event.Seq)

	// Çifte join'e rağmen event tek kopya gelir
	assert.Empty(t, client.send)
}

func TestEmitToEmptyRoomIsNoop(t *testing.T) {
	hub := NewHub()

	// Panic yok, hata yok — sessiz no-op
	hub.EmitToRoom(VideoRoom("ghost"), Event{Op: OpReactionAdd})
	assert.Equal(t, 0, hub.RoomSize(VideoRoom("ghost")))
}

func TestEmitOnlyReachesJoinedRoom(t *testing.T) {
	hub := NewHub()
	watcher := newTestClient(hub, "c1", "u1", 8)
	other := newTestClient(hub, "c2", "u2", 8)
	hub.addClient(watcher)
	hub.addClient(other)

	hub.JoinRoom(watcher, VideoRoom("v1"))
	hub.JoinRoom(other, VideoRoom("v2"))

	hub.EmitToRoom(VideoRoom("v1"), Event{Op: OpCommentAdd})

	event := recvEvent(t, watcher)
	assert.Equal(t, OpCommentAdd, event.Op)
	assert.Empty(t, other.send)
}

func TestRemoveClientClearsRooms(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "c1", "u1", 8)
	hub.addClient(client)

	hub.JoinRoom(client, VideoRoom("v1"))
	hub.JoinRoom(client, ChannelRoom("ch1"))

	hub.removeClient(client)

	assert.Equal(t, 0, hub.RoomSize(VideoRoom("v1")))
	assert.Equal(t, 0, hub.RoomSize(ChannelRoom("ch1")))

	// send channel kapatıldı
	_, open := <-client.send
	assert.False(t, open)

	// Çifte unregister panic üretmemeli (send zaten kapalı)
	hub.removeClient(client)
}

func TestJoinAfterRemoveIgnored(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "c1", "u1", 8)
	hub.addClient(client)
	hub.removeClient(client)

	hub.JoinRoom(client, VideoRoom("v1"))
	assert.Equal(t, 0, hub.RoomSize(VideoRoom("v1")))
}

func TestEmitToUserTargetsNotificationRoom(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "c1", "u1", 8)
	hub.addClient(client)
	hub.JoinRoom(client, NotificationRoom("u1"))

	hub.EmitToUser("u1", Event{Op: OpVideoPublish})

	event := recvEvent(t, client)
	assert.Equal(t, OpVideoPublish, event.Op)
}

func TestSlowClientGetsDisconnected(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Buffer boyutu 1 — ikinci event buffer'a sığmaz
	slow := newTestClient(hub, "c1", "u1", 1)
	hub.addClient(slow)
	hub.JoinRoom(slow, VideoRoom("v1"))

	hub.EmitToRoom(VideoRoom("v1"), Event{Op: OpCommentAdd})
	hub.EmitToRoom(VideoRoom("v1"), Event{Op: OpCommentUpdate})

	// Dolu buffer'lı client unregister edilir (Run goroutine'i işler)
	require.Eventually(t, func() bool {
		return hub.RoomSize(VideoRoom("v1")) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestSendAfterRemoveIsNoop(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "c1", "u1", 8)
	hub.addClient(client)
	hub.removeClient(client)

	// ReadPump'ın heartbeat ack'i unregister ile yarışabilir —
	// kapalı client'a gönderim panic değil sessiz no-op olmalı.
	require.NotPanics(t, func() {
		client.sendEvent(Event{Op: OpHeartbeatAck})
	})

	// Shutdown sonrası da aynı garanti geçerli
	other := newTestClient(hub, "c2", "u2", 8)
	hub.addClient(other)
	hub.Shutdown()
	require.NotPanics(t, func() {
		other.sendEvent(Event{Op: OpSocketError, Data: SocketErrorData{Message: "late"}})
	})
}

func TestSeqMonotonicallyIncreases(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "c1", "u1", 8)
	hub.addClient(client)
	hub.JoinRoom(client, VideoRoom("v1"))

	hub.EmitToRoom(VideoRoom("v1"), Event{Op: OpCommentAdd})
	hub.EmitToRoom(VideoRoom("v1"), Event{Op: OpCommentAdd})
	hub.EmitToRoom(VideoRoom("v1"), Event{Op: OpCommentAdd})

	var last int64
	for i := 0; i < 3; i++ {
		event := recvEvent(t, client)
		assert.Greater(t, event.Seq, last)
		last = event.Seq
	}
}
