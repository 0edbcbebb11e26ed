package models

import (
	"time"
)

// Chat is the message channel of a study group. Every group gets exactly one
// chat, created alongside the group.
type Chat struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `gorm:"uniqueIndex" json:"group_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	ChatID      uint         `gorm:"index" json:"chat_id"`
	SenderID    uint         `json:"sender_id"`
	Sender      User         `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Content     string       `gorm:"type:text" json:"content,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:MessageID" json:"attachments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Attachment carries file metadata only; the file itself lives elsewhere.
type Attachment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID uint      `gorm:"index" json:"message_id"`
	Type      string    `gorm:"size:20" json:"type"` // image, file
	FileName  string    `gorm:"size:255" json:"file_name"`
	FileURL   string    `gorm:"size:512" json:"file_url"`
	FileSize  int64     `json:"file_size"`
	CreatedAt time.Time `json:"created_at"`
}
