package models

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
)

type ConsultationService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name             string `gorm:"size:255;not null" json:"name"`
	Slug             string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description      string `gorm:"type:text" json:"description"`
	ShortDescription string `gorm:"size:500" json:"short_description"`
	Category         string `gorm:"size:100" json:"category"`

	Price    float64 `gorm:"not null" json:"price"`
	Currency string  `gorm:"size:10;default:'NGN'" json:"currency"`

	DurationMinutes int    `gorm:"default:60" json:"duration_minutes"`
	IconName        string `gorm:"size:100" json:"icon_name"`
	ImageURL        string `gorm:"size:500" json:"image_url"`

	OrderPriority int  `gorm:"default:0" json:"order_priority"`
	IsActive      bool `gorm:"default:true" json:"is_active"`
	IsFeatured    bool `gorm:"default:false" json:"is_featured"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *ConsultationService) BeforeCreate(tx *gorm.DB) error {
	if s.Slug == "" {
		s.Slug = Slugify(s.Name)
	}
	return nil
}

func (s *ConsultationService) FormattedPrice() string {
	return fmt.Sprintf("%s %.2f", s.Currency, s.Price)
}

// ConsultationBooking is a prospective client engagement. The reference is
// the external correlation key with the payment gateway; the amount is
// snapshotted at creation and never re-derived from the service.
type ConsultationBooking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Reference string `gorm:"size:50;uniqueIndex;not null" json:"reference"`

	ServiceID                *uint                `json:"service_id"`
	Service                  *ConsultationService `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`
	CustomServiceDescription string               `gorm:"size:500" json:"custom_service_description"`

	ClientName    string `gorm:"size:255;not null" json:"client_name"`
	ClientEmail   string `gorm:"size:100;not null" json:"client_email"`
	ClientPhone   string `gorm:"size:50;not null" json:"client_phone"`
	ClientCompany string `gorm:"size:255" json:"client_company"`

	PreferredDate time.Time `gorm:"type:date;index" json:"preferred_date"`
	PreferredTime string    `gorm:"size:10" json:"preferred_time"`
	Notes         string    `gorm:"type:text" json:"notes"`

	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"size:10;default:'NGN'" json:"currency"`

	Status string `gorm:"size:30;default:'pending_payment';index" json:"status"`

	PaymentVerified   bool       `gorm:"default:false" json:"payment_verified"`
	PaymentVerifiedAt *time.Time `json:"payment_verified_at"`
	PaymentChannel    string     `gorm:"size:50" json:"payment_channel"`

	ProviderReference  string `gorm:"size:100" json:"provider_reference"`
	ProviderAccessCode string `gorm:"size:100" json:"provider_access_code"`

	AssignedAssociateID *uint      `json:"assigned_associate_id"`
	AssignedAssociate   *Associate `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"assigned_associate,omitempty"`
	AdminNotes          string     `gorm:"type:text" json:"admin_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServiceName describes what was booked, falling back to the custom
// description for service-less bookings.
func (b *ConsultationBooking) ServiceName() string {
	if b.Service != nil {
		return b.Service.Name
	}
	if b.CustomServiceDescription != "" {
		return b.CustomServiceDescription
	}
	return "General Consultation"
}

// AmountMinor converts the stored amount to the gateway's minor-unit
// representation (kobo for NGN).
func (b *ConsultationBooking) AmountMinor() int64 {
	return int64(math.Round(b.Amount * 100))
}

func (b *ConsultationBooking) FormattedAmount() string {
	return fmt.Sprintf("%s %.2f", b.Currency, b.Amount)
}
