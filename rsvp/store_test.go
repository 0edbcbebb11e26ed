package rsvp

import (
	"testing"
	"time"
)

func TestCreateIsIdempotent(t *testing.T) {
	s := NewStore()

	s.Create(10, 1, StatusYes)
	s.Create(10, 1, StatusYes)

	recs := s.FindBySession(10)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record after duplicate create, got %d", len(recs))
	}
	if recs[0].Status != StatusYes {
		t.Errorf("status got %q, want %q", recs[0].Status, StatusYes)
	}
}

func TestCreateOverwritesStatus(t *testing.T) {
	s := NewStore()

	s.Create(10, 1, StatusYes)
	before := time.Now()
	s.Create(10, 1, StatusNo)

	rec, ok := s.UserRSVP(10, 1)
	if !ok {
		t.Fatal("expected record for (10, 1)")
	}
	if rec.Status != StatusNo {
		t.Errorf("status got %q, want %q", rec.Status, StatusNo)
	}
	if rec.CreatedAt.Before(before) {
		t.Errorf("CreatedAt not refreshed on upsert: %v < %v", rec.CreatedAt, before)
	}
	if got := len(s.FindBySession(10)); got != 1 {
		t.Errorf("expected exactly 1 record for the pair, got %d", got)
	}
}

func TestAttendeeCount(t *testing.T) {
	s := NewStore()

	s.Create(5, 1, StatusYes)
	s.Create(5, 2, StatusYes)
	s.Create(5, 3, StatusNo)

	if got := s.AttendeeCount(5); got != 2 {
		t.Errorf("AttendeeCount(5) = %d, want 2", got)
	}
}

func TestSessionIsolation(t *testing.T) {
	s := NewStore()

	s.Create(1, 1, StatusYes)
	s.Create(2, 1, StatusYes)

	for _, r := range s.FindBySession(2) {
		if r.SessionID != 2 {
			t.Errorf("FindBySession(2) returned record for session %d", r.SessionID)
		}
	}
	if got := len(s.FindBySession(2)); got != 1 {
		t.Errorf("FindBySession(2) length = %d, want 1", got)
	}
}

func TestCancelExcludedFromCount(t *testing.T) {
	s := NewStore()

	rec := s.Create(10, 1, StatusYes)
	if rec.Status != StatusYes {
		t.Fatalf("Create returned status %q, want %q", rec.Status, StatusYes)
	}

	s.Create(10, 2, StatusYes)
	if got := s.AttendeeCount(10); got != 2 {
		t.Fatalf("AttendeeCount = %d, want 2", got)
	}

	s.Create(10, 1, StatusCancel)
	if got := s.AttendeeCount(10); got != 1 {
		t.Errorf("AttendeeCount after cancel = %d, want 1", got)
	}
	if got := len(s.FindBySession(10)); got != 2 {
		t.Errorf("FindBySession length = %d, want 2 (cancel keeps the record)", got)
	}
}

func TestUnknownStatusStoredAsIs(t *testing.T) {
	s := NewStore()

	s.Create(7, 1, "maybe")

	rec, ok := s.UserRSVP(7, 1)
	if !ok {
		t.Fatal("expected record for (7, 1)")
	}
	if rec.Status != "maybe" {
		t.Errorf("status got %q, want %q", rec.Status, "maybe")
	}
	if got := s.AttendeeCount(7); got != 0 {
		t.Errorf("AttendeeCount = %d, want 0 (unknown status never counts)", got)
	}
}

func TestUnknownSessionYieldsEmpty(t *testing.T) {
	s := NewStore()

	if got := len(s.FindBySession(99)); got != 0 {
		t.Errorf("FindBySession(99) length = %d, want 0", got)
	}
	if got := s.AttendeeCount(99); got != 0 {
		t.Errorf("AttendeeCount(99) = %d, want 0", got)
	}
	if _, ok := s.UserRSVP(99, 1); ok {
		t.Error("UserRSVP(99, 1) reported a record for an unknown session")
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	s := NewStore()

	s.Create(3, 5, StatusYes)
	s.Create(3, 6, StatusNo)
	s.Create(3, 7, StatusYes)
	s.Create(3, 5, StatusCancel) // upsert must not reorder

	recs := s.FindBySession(3)
	want := []uint{5, 6, 7}
	if len(recs) != len(want) {
		t.Fatalf("length = %d, want %d", len(recs), len(want))
	}
	for i, r := range recs {
		if r.UserID != want[i] {
			t.Errorf("position %d: user %d, want %d", i, r.UserID, want[i])
		}
	}
}
