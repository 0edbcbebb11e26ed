// Package realtime keeps a client-side view of a chat in sync with the
// server's push channel. A ChatView owns the message cache for the chat the
// user is currently looking at; room subscriptions are paired so that every
// activation emits exactly one join_chat and every deactivation exactly one
// leave_chat.
package realtime

import (
	"github.com/hustudent/backend/models"
)

// RoomEmitter sends room-control events over the transport. *Client
// satisfies it; tests substitute a recorder.
type RoomEmitter interface {
	Emit(event string, chatID uint) error
}

// ActionType tags a cache state transition.
type ActionType string

const (
	HistoryLoaded   ActionType = "history_loaded"
	MessageReceived ActionType = "message_received"
	MessageSent     ActionType = "message_sent"
)

// Action is a single cache mutation. Messages is set for HistoryLoaded,
// Message for the other two.
type Action struct {
	Type     ActionType
	Messages []models.Message
	Message  models.Message
}

// ChatView coordinates room membership and the message cache for the active
// chat. All cache writes flow through Apply, so the history fetch, the socket
// push handler and the outgoing-send path never race each other.
//
// ChatView methods must be called from a single goroutine (the UI loop); the
// transport read loop hands events over via Apply.
type ChatView struct {
	emitter RoomEmitter

	active    uint
	hasActive bool

	messages []models.Message
	seen     map[uint]bool

	// OnAppend fires after a message is appended to the cache. Used for
	// scroll-to-bottom.
	OnAppend func(models.Message)
}

func NewChatView(emitter RoomEmitter) *ChatView {
	return &ChatView{
		emitter: emitter,
		seen:    make(map[uint]bool),
	}
}

// SetActive switches the view to a chat: the previous room (if any) gets one
// leave_chat, the new one gets one join_chat, and the cache resets. Switching
// to the already-active chat is a no-op.
func (v *ChatView) SetActive(chatID uint) error {
	if v.hasActive && v.active == chatID {
		return nil
	}

	if v.hasActive {
		if err := v.emitter.Emit("leave_chat", v.active); err != nil {
			return err
		}
		v.hasActive = false
	}

	if err := v.emitter.Emit("join_chat", chatID); err != nil {
		return err
	}

	v.active = chatID
	v.hasActive = true
	v.messages = nil
	v.seen = make(map[uint]bool)
	return nil
}

// Close releases the active room subscription. Safe to call more than once
// and on every exit path.
func (v *ChatView) Close() error {
	if !v.hasActive {
		return nil
	}
	v.hasActive = false
	return v.emitter.Emit("leave_chat", v.active)
}

// Active returns the active chat id and whether one is set.
func (v *ChatView) Active() (uint, bool) {
	return v.active, v.hasActive
}

// Apply runs one cache state transition.
//
// HistoryLoaded replaces the cache with the fetched page, dropping any
// entries that do not belong to the active chat. MessageReceived and
// MessageSent append a single message; both discard messages for other chats
// and duplicates by id, so a REST send racing its own socket echo lands in
// the cache exactly once.
func (v *ChatView) Apply(action Action) {
	switch action.Type {
	case HistoryLoaded:
		v.messages = nil
		v.seen = make(map[uint]bool)
		for _, m := range action.Messages {
			if !v.hasActive || m.ChatID != v.active || v.seen[m.ID] {
				continue
			}
			v.messages = append(v.messages, m)
			v.seen[m.ID] = true
		}
	case MessageReceived, MessageSent:
		v.append(action.Message)
	}
}

func (v *ChatView) append(m models.Message) {
	if !v.hasActive || m.ChatID != v.active {
		return
	}
	if v.seen[m.ID] {
		return
	}
	v.messages = append(v.messages, m)
	v.seen[m.ID] = true
	if v.OnAppend != nil {
		v.OnAppend(m)
	}
}

// Messages returns a copy of the cached message list in arrival order.
func (v *ChatView) Messages() []models.Message {
	out := make([]models.Message, len(v.messages))
	copy(out, v.messages)
	return out
}
