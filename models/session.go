package models

import (
	"time"
)

// StudySession is a scheduled group-study event. Attendance intent for a
// session is held by the in-memory RSVP store, not by a table here.
type StudySession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `gorm:"index" json:"group_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Location  string    `gorm:"size:255" json:"location,omitempty"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	CreatedBy uint      `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
