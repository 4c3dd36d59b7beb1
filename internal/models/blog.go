package models

import (
	"time"

	"gorm.io/gorm"
)

type BlogCategory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`

	OrderPriority int `gorm:"default:0" json:"order_priority"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *BlogCategory) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	return nil
}

type BlogPost struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title   string `gorm:"size:255;not null" json:"title"`
	Slug    string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Excerpt string `gorm:"size:500" json:"excerpt"`
	Content string `gorm:"type:text" json:"content"`

	AuthorID uint `json:"author_id"`
	Author   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"author"`

	Categories []BlogCategory `gorm:"many2many:blog_post_categories;" json:"categories"`

	FeaturedImageURL string `gorm:"size:500" json:"featured_image_url"`
	MetaDescription  string `gorm:"size:160" json:"meta_description"`
	MetaKeywords     string `gorm:"size:255" json:"meta_keywords"`

	// AI-generated summary, refreshed when the content changes.
	AIOverview string `gorm:"type:text" json:"ai_overview"`

	IsPublished   bool `gorm:"default:false;index" json:"is_published"`
	IsFeatured    bool `gorm:"default:false" json:"is_featured"`
	OrderPriority int  `gorm:"default:0" json:"order_priority"`

	ViewCount int64 `gorm:"default:0" json:"view_count"`

	PublishDate *time.Time `gorm:"index" json:"publish_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	return nil
}

// BlogViewStat is a per-day rollup of blog views across all posts, written
// by the view counter so the dashboard can chart traffic over time.
type BlogViewStat struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date  time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`
	Views int64     `gorm:"default:0" json:"views"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
