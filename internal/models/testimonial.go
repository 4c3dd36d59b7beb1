package models

import "time"

type Testimonial struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientName    string `gorm:"size:255;not null" json:"client_name"`
	ClientTitle   string `gorm:"size:255" json:"client_title"`
	ClientCompany string `gorm:"size:255" json:"client_company"`
	Content       string `gorm:"type:text;not null" json:"content"`
	Rating        int    `gorm:"default:5" json:"rating"`
	ImageURL      string `gorm:"size:500" json:"image_url"`

	OrderPriority int  `gorm:"default:0" json:"order_priority"`
	IsActive      bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
