package models

import (
	"time"
)

type Deck struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OwnerID   uint        `gorm:"index" json:"owner_id"`
	Title     string      `gorm:"size:255;not null" json:"title"`
	Subject   string      `gorm:"size:255" json:"subject,omitempty"`
	Cards     []Flashcard `gorm:"foreignKey:DeckID" json:"cards,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type Flashcard struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DeckID    uint      `gorm:"index" json:"deck_id"`
	Front     string    `gorm:"type:text;not null" json:"front"`
	Back      string    `gorm:"type:text;not null" json:"back"`
	CreatedAt time.Time `json:"created_at"`
}
