package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/hustudent/backend/models"
)

// Event mirrors the server's websocket envelope.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Client is a websocket connection to the Hustudent push channel. A failed
// connection degrades the app to REST-only reads and sends; it never blocks
// them.
type Client struct {
	conn *websocket.Conn

	writeMux sync.Mutex

	stateMux  sync.Mutex
	connected bool

	// OnDisconnect fires once when the read loop exits. The socket library's
	// reconnect strategy (or the caller redialing) is responsible for
	// resubscribing; history catch-up comes from the REST endpoint.
	OnDisconnect func(error)
}

// Dial connects to the push channel at url (ws://host/ws?token=...).
func Dial(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, connected: true}, nil
}

// Emit sends a room-control event (join_chat / leave_chat).
func (c *Client) Emit(event string, chatID uint) error {
	return c.write(map[string]interface{}{
		"type":    event,
		"payload": chatID,
	})
}

// SendMessage pushes an outgoing chat message over the socket.
func (c *Client) SendMessage(chatID uint, content string) error {
	return c.write(map[string]interface{}{
		"type": "message",
		"payload": map[string]interface{}{
			"chat_id": chatID,
			"content": content,
		},
	})
}

func (c *Client) write(v interface{}) error {
	c.writeMux.Lock()
	defer c.writeMux.Unlock()
	return c.conn.WriteJSON(v)
}

// Listen reads pushed events and feeds receive_message ones into the view
// until the connection drops. Run it in its own goroutine.
func (c *Client) Listen(apply func(Action)) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.setConnected(false)
			log.Printf("realtime: connection lost: %v", err)
			if c.OnDisconnect != nil {
				c.OnDisconnect(err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			log.Printf("realtime: malformed event: %v", err)
			continue
		}

		if event.Type != "receive_message" {
			continue
		}

		var msg models.Message
		if err := json.Unmarshal(event.Payload, &msg); err != nil {
			log.Printf("realtime: malformed message payload: %v", err)
			continue
		}

		apply(Action{Type: MessageReceived, Message: msg})
	}
}

// Connected reports whether the push channel is up. False means live updates
// are degraded; REST paths still work.
func (c *Client) Connected() bool {
	c.stateMux.Lock()
	defer c.stateMux.Unlock()
	return c.connected
}

func (c *Client) setConnected(up bool) {
	c.stateMux.Lock()
	defer c.stateMux.Unlock()
	c.connected = up
}

// Close tears down the connection.
func (c *Client) Close() error {
	c.setConnected(false)
	return c.conn.Close()
}
