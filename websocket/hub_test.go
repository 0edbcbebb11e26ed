package websocket

import (
	"testing"
)

func newTestClient(h *Hub, userID uint) *Client {
	return &Client{
		hub:    h,
		send:   make(chan []byte, 8),
		userID: userID,
		rooms:  make(map[uint]bool),
	}
}

func drain(c *Client) [][]byte {
	var out [][]byte
	for {
		select {
		case msg := <-c.send:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestBroadcastScopedToRoom(t *testing.T) {
	h := NewHub()
	inRoom := newTestClient(h, 1)
	outside := newTestClient(h, 2)
	h.clients[inRoom] = true
	h.clients[outside] = true

	h.joinRoom(inRoom, 42)
	h.joinRoom(outside, 43)

	h.broadcastToRoom(42, []byte(`{"type":"receive_message"}`))

	if got := len(drain(inRoom)); got != 1 {
		t.Errorf("client in room received %d events, want 1", got)
	}
	if got := len(drain(outside)); got != 0 {
		t.Errorf("client in another room received %d events, want 0", got)
	}
}

func TestLeaveRoomStopsDelivery(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, 1)
	h.clients[c] = true

	h.joinRoom(c, 7)
	h.leaveRoom(c, 7)

	h.broadcastToRoom(7, []byte(`{}`))

	if got := len(drain(c)); got != 0 {
		t.Errorf("client received %d events after leaving, want 0", got)
	}
	if _, ok := h.rooms[7]; ok {
		t.Error("empty room was not cleaned up")
	}
}

func TestSendToUserTargetsAllConnections(t *testing.T) {
	h := NewHub()
	first := newTestClient(h, 5)
	second := newTestClient(h, 5)
	other := newTestClient(h, 6)
	h.clients[first] = true
	h.clients[second] = true
	h.clients[other] = true

	h.sendToUser(5, []byte(`{"type":"notification"}`))

	if got := len(drain(first)); got != 1 {
		t.Errorf("first connection received %d events, want 1", got)
	}
	if got := len(drain(second)); got != 1 {
		t.Errorf("second connection received %d events, want 1", got)
	}
	if got := len(drain(other)); got != 0 {
		t.Errorf("other user received %d events, want 0", got)
	}
}

func TestSendToUserDuringRegistration(t *testing.T) {
	h := NewHub()
	go h.Run()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			h.register <- newTestClient(h, uint(i))
		}
	}()

	// Notifications arrive from request goroutines while clients connect;
	// both touch the clients map. Run under -race.
	for i := 0; i < 200; i++ {
		h.sendToUser(uint(i), []byte(`{"type":"notification"}`))
	}
	<-done
}

func TestBroadcastDuringRegistration(t *testing.T) {
	h := NewHub()
	go h.Run()

	member := newTestClient(h, 1)
	h.register <- member
	h.joinRoom(member, 9)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 2; i < 100; i++ {
			h.register <- newTestClient(h, uint(i))
		}
	}()

	for i := 0; i < 100; i++ {
		h.broadcastToRoom(9, []byte(`{}`))
	}
	<-done
}

func TestBroadcastEvictsSlowClient(t *testing.T) {
	h := NewHub()
	slow := &Client{
		hub:    h,
		send:   make(chan []byte), // unbuffered, nobody reading
		userID: 1,
		rooms:  make(map[uint]bool),
	}
	ok := newTestClient(h, 2)
	h.clients[slow] = true
	h.clients[ok] = true
	h.joinRoom(slow, 3)
	h.joinRoom(ok, 3)

	h.broadcastToRoom(3, []byte(`{}`))

	if _, still := h.clients[slow]; still {
		t.Error("slow client still registered after eviction")
	}
	if h.rooms[3][slow] {
		t.Error("slow client still in room after eviction")
	}
	if _, open := <-slow.send; open {
		t.Error("slow client's send channel not closed")
	}
	if got := len(drain(ok)); got != 1 {
		t.Errorf("healthy client received %d events, want 1", got)
	}

	// Unregistering an already-evicted client must be a no-op, not a
	// second close.
	h.removeClient(slow)
}

func TestParseChatID(t *testing.T) {
	if got := parseChatID(float64(12)); got != 12 {
		t.Errorf("parseChatID(12) = %d, want 12", got)
	}
	if got := parseChatID("34"); got != 34 {
		t.Errorf("parseChatID(\"34\") = %d, want 34", got)
	}
	if got := parseChatID("nope"); got != 0 {
		t.Errorf("parseChatID(\"nope\") = %d, want 0", got)
	}
	if got := parseChatID(nil); got != 0 {
		t.Errorf("parseChatID(nil) = %d, want 0", got)
	}
}
