// Package rsvp tracks attendance intent for study sessions.
//
// Records live in process memory only and are lost on restart; the sessions
// they reference are persistent, the intent ledger is not. Status strings are
// stored as given; only StatusYes is special-cased when counting attendees.
package rsvp

import (
	"sync"
	"time"
)

const (
	StatusYes    = "yes"
	StatusNo     = "no"
	StatusCancel = "cancel"
)

// Record is a user's current attendance intent for one session. At most one
// record exists per (SessionID, UserID) pair.
type Record struct {
	SessionID uint      `json:"session_id"`
	UserID    uint      `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Store holds RSVP records for the lifetime of the process. Construct one
// with NewStore and share it; the zero value is not usable.
type Store struct {
	mu      sync.RWMutex
	records []Record
}

func NewStore() *Store {
	return &Store{records: make([]Record, 0)}
}

// Create upserts the record for (sessionID, userID). An existing record is
// mutated in place: its status is overwritten and CreatedAt refreshed. The
// returned value is a copy.
func (s *Store) Create(sessionID, userID uint, status string) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].SessionID == sessionID && s.records[i].UserID == userID {
			s.records[i].Status = status
			s.records[i].CreatedAt = time.Now()
			return s.records[i]
		}
	}

	rec := Record{
		SessionID: sessionID,
		UserID:    userID,
		Status:    status,
		CreatedAt: time.Now(),
	}
	s.records = append(s.records, rec)
	return rec
}

// FindBySession returns all records for a session, in insertion order.
// Unknown sessions yield an empty slice, not an error.
func (s *Store) FindBySession(sessionID uint) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0)
	for _, r := range s.records {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out
}

// AttendeeCount counts the records for a session whose status is StatusYes.
func (s *Store) AttendeeCount(sessionID uint) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, r := range s.records {
		if r.SessionID == sessionID && r.Status == StatusYes {
			count++
		}
	}
	return count
}

// UserRSVP looks up the record for (sessionID, userID). The second return
// value reports whether a record exists.
func (s *Store) UserRSVP(sessionID, userID uint) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.SessionID == sessionID && r.UserID == userID {
			return r, true
		}
	}
	return Record{}, false
}
