package models

import (
	"time"
)

type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Subject     string    `gorm:"size:255" json:"subject"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedBy   uint      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Users       []User    `gorm:"many2many:group_members;" json:"users,omitempty"`
}

type GroupMember struct {
	GroupID    uint      `gorm:"primaryKey" json:"group_id"`
	UserID     uint      `gorm:"primaryKey" json:"user_id"`
	Role       string    `gorm:"size:20;default:'member'" json:"role"` // member, owner
	LastReadAt time.Time `json:"last_read_at"`
	CreatedAt  time.Time `json:"created_at"`
}
