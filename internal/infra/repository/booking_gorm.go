package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/lightfieldlegal/lightfield-api/internal/domain/booking"
	"github.com/lightfieldlegal/lightfield-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Service / Associate
// --------------------------------------------------

func (r *BookingGormRepository) GetActiveService(
	ctx context.Context,
	serviceID uint,
) (*models.ConsultationService, error) {

	var service models.ConsultationService
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", serviceID, true).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *BookingGormRepository) GetActiveAssociate(
	ctx context.Context,
	associateID uint,
) (*models.Associate, error) {

	var assoc models.Associate
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", associateID, true).
		First(&assoc).Error; err != nil {
		return nil, err
	}
	return &assoc, nil
}

// --------------------------------------------------
// Booking (create / rollback)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.ConsultationBooking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	b *models.ConsultationBooking,
) error {
	return r.db.WithContext(ctx).Delete(b).Error
}

func (r *BookingGormRepository) SaveProviderHandles(
	ctx context.Context,
	b *models.ConsultationBooking,
) error {
	return r.db.WithContext(ctx).
		Model(b).
		Select("provider_reference", "provider_access_code").
		Updates(map[string]any{
			"provider_reference":   b.ProviderReference,
			"provider_access_code": b.ProviderAccessCode,
		}).Error
}

// --------------------------------------------------
// Booking (lookup)
// --------------------------------------------------

func (r *BookingGormRepository) GetByReference(
	ctx context.Context,
	reference string,
) (*models.ConsultationBooking, error) {

	var b models.ConsultationBooking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("AssignedAssociate").
		Where("reference = ?", reference).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.ConsultationBooking, error) {

	var b models.ConsultationBooking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("AssignedAssociate").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) List(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.ConsultationBooking, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Preload("AssignedAssociate").
		Model(&models.ConsultationBooking{})

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where(
			"client_name ILIKE ? OR client_email ILIKE ? OR reference ILIKE ?",
			like, like, like,
		)
	}
	if filter.DateFrom != nil {
		q = q.Where("preferred_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("preferred_date <= ?", *filter.DateTo)
	}
	if filter.ServiceID != nil {
		q = q.Where("service_id = ?", *filter.ServiceID)
	}

	var bookings []models.ConsultationBooking
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Payment confirmation
// --------------------------------------------------

// MarkPaid is the guard-then-write critical section of the reconciler: the
// WHERE payment_verified = false condition makes the flip a compare-and-swap,
// so two concurrent triggers for the same reference can never both succeed.
func (r *BookingGormRepository) MarkPaid(
	ctx context.Context,
	reference string,
	channel string,
	at time.Time,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.ConsultationBooking{}).
		Where("reference = ? AND payment_verified = ?", reference, false).
		Updates(map[string]any{
			"payment_verified":    true,
			"payment_verified_at": at,
			"payment_channel":     channel,
			"status":              string(domain.StatusPaid),
		})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// --------------------------------------------------
// Admin update
// --------------------------------------------------

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.ConsultationBooking,
) error {
	return r.db.WithContext(ctx).
		Model(b).
		Select("status", "admin_notes", "assigned_associate_id").
		Updates(map[string]any{
			"status":                b.Status,
			"admin_notes":           b.AdminNotes,
			"assigned_associate_id": b.AssignedAssociateID,
		}).Error
}
