package booking

import (
	"context"
	"time"

	"github.com/lightfieldlegal/lightfield-api/internal/models"
)

// ListFilter narrows the admin booking list.
type ListFilter struct {
	Status    string
	Search    string
	DateFrom  *time.Time
	DateTo    *time.Time
	ServiceID *uint
}

type Repository interface {
	// -------- Service --------
	GetActiveService(
		ctx context.Context,
		serviceID uint,
	) (*models.ConsultationService, error)

	// -------- Associate --------
	GetActiveAssociate(
		ctx context.Context,
		associateID uint,
	) (*models.Associate, error)

	// -------- Booking (create / rollback) --------
	CreateBooking(
		ctx context.Context,
		b *models.ConsultationBooking,
	) error

	DeleteBooking(
		ctx context.Context,
		b *models.ConsultationBooking,
	) error

	SaveProviderHandles(
		ctx context.Context,
		b *models.ConsultationBooking,
	) error

	// -------- Booking (lookup) --------
	GetByReference(
		ctx context.Context,
		reference string,
	) (*models.ConsultationBooking, error)

	GetByID(
		ctx context.Context,
		id uint,
	) (*models.ConsultationBooking, error)

	List(
		ctx context.Context,
		filter ListFilter,
	) ([]models.ConsultationBooking, error)

	// -------- Payment confirmation --------
	// MarkPaid flips payment_verified from false to true as a single
	// conditional update keyed by reference. It returns false when another
	// trigger already won the race; it is the only write path allowed to
	// set payment_verified.
	MarkPaid(
		ctx context.Context,
		reference string,
		channel string,
		at time.Time,
	) (bool, error)

	// -------- Admin update --------
	UpdateBooking(
		ctx context.Context,
		b *models.ConsultationBooking,
	) error
}
