package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains the set of active clients and routes pushed events to the
// chat rooms they joined.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Mutex for clients map; NotifyUser reads it from request goroutines
	// while Run mutates it
	clientsMux sync.RWMutex

	// Rooms mapping (chatID -> clients)
	rooms map[uint]map[*Client]bool

	// Mutex for rooms map
	roomsMux sync.RWMutex

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a new hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rooms:      make(map[uint]map[*Client]bool),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMux.Lock()
			h.clients[client] = true
			h.clientsMux.Unlock()
		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

// removeClient drops a client from the hub and every room it joined, closing
// its send channel. Safe to call twice for the same client; only the first
// call does anything, so the unregister path and slow-client eviction cannot
// double-close.
func (h *Hub) removeClient(client *Client) {
	h.clientsMux.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
	}
	h.clientsMux.Unlock()

	if !ok {
		return
	}
	close(client.send)

	// Remove client from all rooms
	h.roomsMux.Lock()
	for chatID, clients := range h.rooms {
		if _, ok := clients[client]; ok {
			delete(h.rooms[chatID], client)
			// Clean up empty rooms
			if len(h.rooms[chatID]) == 0 {
				delete(h.rooms, chatID)
			}
		}
	}
	h.roomsMux.Unlock()
}

// joinRoom adds a client to a chat room
func (h *Hub) joinRoom(client *Client, chatID uint) {
	h.roomsMux.Lock()
	defer h.roomsMux.Unlock()

	if _, ok := h.rooms[chatID]; !ok {
		h.rooms[chatID] = make(map[*Client]bool)
	}
	h.rooms[chatID][client] = true
}

// leaveRoom removes a client from a chat room
func (h *Hub) leaveRoom(client *Client, chatID uint) {
	h.roomsMux.Lock()
	defer h.roomsMux.Unlock()

	if _, ok := h.rooms[chatID]; ok {
		delete(h.rooms[chatID], client)
		// Clean up empty rooms
		if len(h.rooms[chatID]) == 0 {
			delete(h.rooms, chatID)
		}
	}
}

// broadcastToRoom sends an event to all clients currently in a chat room.
// Clients whose send buffer is full are evicted after the read lock is
// released; eviction needs the write locks.
func (h *Hub) broadcastToRoom(chatID uint, message []byte) {
	h.roomsMux.RLock()
	recipients := make([]*Client, 0, len(h.rooms[chatID]))
	for client := range h.rooms[chatID] {
		recipients = append(recipients, client)
	}
	h.roomsMux.RUnlock()

	var slow []*Client
	for _, client := range recipients {
		select {
		case client.send <- message:
		default:
			slow = append(slow, client)
		}
	}

	for _, client := range slow {
		h.removeClient(client)
	}
}

// sendToUser delivers an event to every connection owned by a user
func (h *Hub) sendToUser(userID uint, message []byte) {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()

	for client := range h.clients {
		if client.userID == userID {
			select {
			case client.send <- message:
			default:
			}
		}
	}
}

// BroadcastToRoom sends an event to all clients in a chat room
func BroadcastToRoom(chatID uint, event string, payload interface{}) {
	msg := Event{
		Type:    event,
		Payload: payload,
	}

	msgBytes, err := json.Marshal(msg)
	if err != nil {
		log.Printf("error marshaling event: %v", err)
		return
	}

	hub.broadcastToRoom(chatID, msgBytes)
}

// NotifyUser pushes a notification event to a user's active connections.
// Offline users are silently skipped; the persisted notification row is the
// durable copy.
func NotifyUser(userID uint, payload interface{}) {
	msg := Event{
		Type:    "notification",
		Payload: payload,
	}

	msgBytes, err := json.Marshal(msg)
	if err != nil {
		log.Printf("error marshaling notification: %v", err)
		return
	}

	hub.sendToUser(userID, msgBytes)
}

// Global hub instance
var hub *Hub

// InitHub initializes the global hub
func InitHub() {
	hub = NewHub()
	go hub.Run()
}
