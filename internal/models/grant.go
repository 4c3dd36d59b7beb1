package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	GrantStatusUpcoming = "upcoming"
	GrantStatusOpen     = "open"
	GrantStatusClosed   = "closed"
)

// Grant is a funding opportunity the firm publishes for startups and
// researchers in its practice areas.
type Grant struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title     string `gorm:"size:255;not null" json:"title"`
	Slug      string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	GrantType string `gorm:"size:100" json:"grant_type"`

	Amount   *float64 `json:"amount"`
	Currency string   `gorm:"size:10;default:'NGN'" json:"currency"`

	ShortDescription string `gorm:"size:500" json:"short_description"`
	Description      string `gorm:"type:text" json:"description"`
	ImageURL         string `gorm:"size:500" json:"image_url"`
	TargetAudience   string `gorm:"size:255" json:"target_audience"`

	EligibilityCriteria StringList `gorm:"type:jsonb;default:'[]'" json:"eligibility_criteria"`
	Requirements        StringList `gorm:"type:jsonb;default:'[]'" json:"requirements"`
	Guidelines          StringList `gorm:"type:jsonb;default:'[]'" json:"guidelines"`
	TargetInstitutions  StringList `gorm:"type:jsonb;default:'[]'" json:"target_institutions"`

	ApplicationDeadline *time.Time `json:"application_deadline"`
	AnnouncementDate    *time.Time `json:"announcement_date"`

	Status string `gorm:"size:20;default:'upcoming';index" json:"status"`

	IsFeatured    bool `gorm:"default:false" json:"is_featured"`
	IsActive      bool `gorm:"default:true" json:"is_active"`
	OrderPriority int  `gorm:"default:0" json:"order_priority"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *Grant) BeforeCreate(tx *gorm.DB) error {
	if g.Slug == "" {
		g.Slug = Slugify(g.Title)
	}
	return nil
}

// IsApplicationOpen reports whether applications are currently accepted.
func (g *Grant) IsApplicationOpen(now time.Time) bool {
	if g.Status != GrantStatusOpen {
		return false
	}
	if g.ApplicationDeadline == nil {
		return true
	}
	return !g.ApplicationDeadline.Before(now.Truncate(24 * time.Hour))
}

// DaysUntilDeadline returns the remaining days, nil when no deadline is set.
func (g *Grant) DaysUntilDeadline(now time.Time) *int {
	if g.ApplicationDeadline == nil {
		return nil
	}
	days := int(g.ApplicationDeadline.Sub(now).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}

func (g *Grant) FormattedAmount() string {
	if g.Amount == nil {
		return ""
	}
	return fmt.Sprintf("%s %.2f", g.Currency, *g.Amount)
}
