package models

import "time"

const (
	ContactStatusUnread    = "unread"
	ContactStatusRead      = "read"
	ContactStatusResponded = "responded"
)

type ContactSubmission struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:255;not null" json:"name"`
	Email   string `gorm:"size:100;not null" json:"email"`
	Phone   string `gorm:"size:50" json:"phone"`
	Subject string `gorm:"size:255;not null" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`

	Status string `gorm:"size:20;default:'unread';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
