package realtime

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hustudent/backend/models"
)

type recordedEmit struct {
	event  string
	chatID uint
}

type fakeEmitter struct {
	emits []recordedEmit
	err   error
}

func (f *fakeEmitter) Emit(event string, chatID uint) error {
	if f.err != nil {
		return f.err
	}
	f.emits = append(f.emits, recordedEmit{event, chatID})
	return nil
}

func msg(id, chatID uint) models.Message {
	return models.Message{
		ID:        id,
		ChatID:    chatID,
		SenderID:  1,
		Content:   fmt.Sprintf("message %d", id),
		CreatedAt: time.Now(),
	}
}

func TestJoinLeavePairing(t *testing.T) {
	em := &fakeEmitter{}
	v := NewChatView(em)

	if err := v.SetActive(1); err != nil {
		t.Fatalf("SetActive(1) error: %v", err)
	}
	if err := v.SetActive(2); err != nil {
		t.Fatalf("SetActive(2) error: %v", err)
	}

	want := []recordedEmit{
		{"join_chat", 1},
		{"leave_chat", 1},
		{"join_chat", 2},
	}
	if len(em.emits) != len(want) {
		t.Fatalf("emitted %d events, want %d: %v", len(em.emits), len(want), em.emits)
	}
	for i, w := range want {
		if em.emits[i] != w {
			t.Errorf("emit %d = %v, want %v", i, em.emits[i], w)
		}
	}
}

func TestSetActiveSameChatIsNoop(t *testing.T) {
	em := &fakeEmitter{}
	v := NewChatView(em)

	v.SetActive(1)
	v.Apply(Action{Type: MessageReceived, Message: msg(10, 1)})
	v.SetActive(1)

	if len(em.emits) != 1 {
		t.Errorf("emitted %d events, want 1 (no rejoin)", len(em.emits))
	}
	if len(v.Messages()) != 1 {
		t.Errorf("cache reset by redundant SetActive")
	}
}

func TestCloseReleasesSubscriptionOnce(t *testing.T) {
	em := &fakeEmitter{}
	v := NewChatView(em)

	v.SetActive(3)
	if err := v.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if err := v.Close(); err != nil {
		t.Fatalf("second Close error: %v", err)
	}

	want := []recordedEmit{{"join_chat", 3}, {"leave_chat", 3}}
	if len(em.emits) != len(want) {
		t.Fatalf("emitted %d events, want %d: %v", len(em.emits), len(want), em.emits)
	}
}

func TestDuplicateMessageDiscarded(t *testing.T) {
	em := &fakeEmitter{}
	v := NewChatView(em)
	appended := 0
	v.OnAppend = func(models.Message) { appended++ }

	v.SetActive(1)
	v.Apply(Action{Type: MessageReceived, Message: msg(5, 1)})
	v.Apply(Action{Type: MessageReceived, Message: msg(5, 1)})

	if got := len(v.Messages()); got != 1 {
		t.Errorf("cache length = %d, want 1", got)
	}
	if appended != 1 {
		t.Errorf("OnAppend fired %d times, want 1", appended)
	}
}

func TestOtherChatMessageDiscarded(t *testing.T) {
	em := &fakeEmitter{}
	v := NewChatView(em)

	v.SetActive(1)
	v.Apply(Action{Type: MessageReceived, Message: msg(5, 2)})

	if got := len(v.Messages()); got != 0 {
		t.Errorf("cache length = %d, want 0 (message was for another chat)", got)
	}
}

func TestNoActiveChatDiscards(t *testing.T) {
	em := &fakeEmitter{}
	v := NewChatView(em)

	v.Apply(Action{Type: MessageReceived, Message: msg(1, 1)})

	if got := len(v.Messages()); got != 0 {
		t.Errorf("cache length = %d, want 0 before any SetActive", got)
	}
}

func TestHistoryLoadedReplacesCache(t *testing.T) {
	em := &fakeEmitter{}
	v := NewChatView(em)

	v.SetActive(1)
	v.Apply(Action{Type: MessageReceived, Message: msg(9, 1)})
	v.Apply(Action{
		Type: HistoryLoaded,
		Messages: []models.Message{
			msg(1, 1),
			msg(2, 1),
			msg(3, 2), // wrong chat, dropped
		},
	})

	got := v.Messages()
	if len(got) != 2 {
		t.Fatalf("cache length = %d, want 2", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("cache order = [%d, %d], want [1, 2]", got[0].ID, got[1].ID)
	}

	// A push carrying a message already in history must not duplicate it.
	v.Apply(Action{Type: MessageReceived, Message: msg(2, 1)})
	if got := len(v.Messages()); got != 2 {
		t.Errorf("cache length after duplicate push = %d, want 2", got)
	}
}

func TestSentMessageRacesOwnEcho(t *testing.T) {
	em := &fakeEmitter{}
	v := NewChatView(em)

	v.SetActive(1)
	v.Apply(Action{Type: MessageSent, Message: msg(7, 1)})
	// the server echoes the same message back over the socket
	v.Apply(Action{Type: MessageReceived, Message: msg(7, 1)})

	if got := len(v.Messages()); got != 1 {
		t.Errorf("cache length = %d, want 1", got)
	}
}

func TestArrivalOrderPreserved(t *testing.T) {
	em := &fakeEmitter{}
	v := NewChatView(em)

	v.SetActive(1)
	for _, id := range []uint{3, 1, 2} {
		v.Apply(Action{Type: MessageReceived, Message: msg(id, 1)})
	}

	got := v.Messages()
	want := []uint{3, 1, 2}
	for i, w := range want {
		if got[i].ID != w {
			t.Errorf("position %d: id %d, want %d", i, got[i].ID, w)
		}
	}
}

func TestSetActiveEmitError(t *testing.T) {
	em := &fakeEmitter{err: errors.New("transport down")}
	v := NewChatView(em)

	if err := v.SetActive(1); err == nil {
		t.Fatal("expected error from SetActive when emit fails")
	}
	if _, ok := v.Active(); ok {
		t.Error("view marked active despite failed join")
	}
}
