package models

import (
	"time"

	"gorm.io/gorm"
)

// Associate is a law firm team member shown on the public site.
type Associate struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:255;not null" json:"name"`
	Slug  string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Title string `gorm:"size:255" json:"title"`
	Bio   string `gorm:"type:text" json:"bio"`

	Expertise StringList `gorm:"type:jsonb;default:'[]'" json:"expertise"`

	ImageURL    string `gorm:"size:500" json:"image_url"`
	Email       string `gorm:"size:100" json:"email"`
	Phone       string `gorm:"size:50" json:"phone"`
	LinkedinURL string `gorm:"size:500" json:"linkedin_url"`
	TwitterURL  string `gorm:"size:500" json:"twitter_url"`

	OrderPriority int  `gorm:"default:0" json:"order_priority"`
	IsActive      bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Associate) BeforeCreate(tx *gorm.DB) error {
	if a.Slug == "" {
		a.Slug = Slugify(a.Name)
	}
	return nil
}
