package models

import (
	"time"
)

// Question is a Q&A board post, optionally scoped to a group.
type Question struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	GroupID          *uint     `gorm:"index" json:"group_id,omitempty"`
	AuthorID         uint      `json:"author_id"`
	Author           User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Title            string    `gorm:"size:255;not null" json:"title"`
	Body             string    `gorm:"type:text;not null" json:"body"`
	AcceptedAnswerID *uint     `json:"accepted_answer_id,omitempty"`
	Answers          []Answer  `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"index" json:"question_id"`
	AuthorID   uint      `json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
