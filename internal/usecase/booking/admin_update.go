package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lightfieldlegal/lightfield-api/internal/audit"
	domain "github.com/lightfieldlegal/lightfield-api/internal/domain/booking"
	"github.com/lightfieldlegal/lightfield-api/internal/httperr"
	"github.com/lightfieldlegal/lightfield-api/internal/models"
)

// AuditSink is where admin mutations get recorded. The audit dispatcher
// satisfies it.
type AuditSink interface {
	Dispatch(ev audit.Event)
}

type AdminUpdateInput struct {
	Status     *domain.Status
	AdminNotes *string

	// AssociateID assigns a team member; ClearAssociate removes the
	// current assignment. At most one of the two is set per request.
	AssociateID    *uint
	ClearAssociate bool
}

// AdminUpdateBooking applies admin-driven changes: status transitions
// validated against the fixed table, free-text notes and associate
// assignment, the latter two independent of status validation.
type AdminUpdateBooking struct {
	repo  domain.Repository
	audit AuditSink
}

func NewAdminUpdateBooking(
	repo domain.Repository,
	audit AuditSink,
) *AdminUpdateBooking {
	return &AdminUpdateBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AdminUpdateBooking) Execute(
	ctx context.Context,
	userID uint,
	bookingID uint,
	in AdminUpdateInput,
) (*models.ConsultationBooking, error) {

	b, err := uc.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "booking not found")
		}
		return nil, err
	}

	previousStatus := b.Status

	if in.Status != nil {
		if err := domain.CanTransition(domain.Status(b.Status), *in.Status); err != nil {
			return nil, err
		}
		b.Status = string(*in.Status)
	}

	if in.AdminNotes != nil {
		b.AdminNotes = *in.AdminNotes
	}

	switch {
	case in.ClearAssociate:
		b.AssignedAssociateID = nil
		b.AssignedAssociate = nil
	case in.AssociateID != nil:
		assoc, err := uc.repo.GetActiveAssociate(ctx, *in.AssociateID)
		if err != nil {
			return nil, httperr.ErrBusinessf(httperr.CodeValidation, "associate not found or inactive")
		}
		b.AssignedAssociateID = &assoc.ID
		b.AssignedAssociate = assoc
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "booking_updated",
		Entity:   "consultation_booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"from_status": previousStatus,
			"to_status":   b.Status,
		},
	})

	return b, nil
}
