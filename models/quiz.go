package models

import (
	"time"
)

type Quiz struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	GroupID   uint           `gorm:"index" json:"group_id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	CreatedBy uint           `json:"created_by"`
	Questions []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// QuizQuestion is a single-choice question. CorrectIndex is never serialized
// to clients; scoring happens server-side.
type QuizQuestion struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	QuizID       uint      `gorm:"index" json:"quiz_id"`
	Prompt       string    `gorm:"type:text;not null" json:"prompt"`
	Choices      []string  `gorm:"serializer:json" json:"choices"`
	CorrectIndex int       `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type QuizAttempt struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	QuizID    uint      `gorm:"index" json:"quiz_id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Answers   []int     `gorm:"serializer:json" json:"answers"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}
