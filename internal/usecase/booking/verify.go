package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/lightfieldlegal/lightfield-api/internal/domain/booking"
	"github.com/lightfieldlegal/lightfield-api/internal/httperr"
	"github.com/lightfieldlegal/lightfield-api/internal/models"
	"github.com/lightfieldlegal/lightfield-api/internal/notify"
)

// VerifyPayment marks a booking paid exactly once. It is shared by the two
// triggers that race on the same reference: the client-polled verification
// endpoint and the provider webhook.
type VerifyPayment struct {
	repo     domain.Repository
	gateway  domain.Gateway
	notifier notify.BookingNotifier
	logger   *zap.Logger

	now func() time.Time
}

func NewVerifyPayment(
	repo domain.Repository,
	gateway domain.Gateway,
	notifier notify.BookingNotifier,
	logger *zap.Logger,
) *VerifyPayment {
	return &VerifyPayment{
		repo:     repo,
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// ExecutePoll handles the client-initiated trigger: the transaction result
// is queried from the gateway. The idempotence guard runs before that call
// so a re-verification of a paid booking never touches the gateway.
func (uc *VerifyPayment) ExecutePoll(
	ctx context.Context,
	reference string,
) (*models.ConsultationBooking, error) {

	b, err := uc.lookup(ctx, reference)
	if err != nil {
		return nil, err
	}
	if b.PaymentVerified {
		return b, nil
	}

	tx, err := uc.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, httperr.ErrBusinessf(httperr.CodeGatewayError, err.Error())
	}

	return uc.reconcile(ctx, b, tx)
}

// ExecuteWebhook handles the provider-pushed trigger: the transaction result
// arrives in the (already signature-validated) payload, so no gateway call
// is made.
func (uc *VerifyPayment) ExecuteWebhook(
	ctx context.Context,
	reference string,
	tx *domain.Transaction,
) (*models.ConsultationBooking, error) {

	b, err := uc.lookup(ctx, reference)
	if err != nil {
		return nil, err
	}
	if b.PaymentVerified {
		return b, nil
	}

	return uc.reconcile(ctx, b, tx)
}

func (uc *VerifyPayment) lookup(
	ctx context.Context,
	reference string,
) (*models.ConsultationBooking, error) {

	b, err := uc.repo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "booking not found")
		}
		return nil, err
	}
	return b, nil
}

// reconcile applies the success and amount-match guards, then attempts the
// single conditional flip of payment_verified. Losing the race to the other
// trigger is a successful no-op: the caller gets the booking as already
// confirmed and no second round of notifications goes out.
func (uc *VerifyPayment) reconcile(
	ctx context.Context,
	b *models.ConsultationBooking,
	tx *domain.Transaction,
) (*models.ConsultationBooking, error) {

	if !tx.Successful() {
		return nil, httperr.ErrBusinessf(
			httperr.CodePaymentNotSuccessful,
			"payment was not successful: "+tx.Status,
		)
	}

	if tx.Amount != b.AmountMinor() {
		uc.logger.Warn("payment amount mismatch",
			zap.String("reference", b.Reference),
			zap.Int64("reported_minor", tx.Amount),
			zap.Int64("expected_minor", b.AmountMinor()),
		)
		return nil, httperr.ErrBusinessf(httperr.CodeAmountMismatch, "payment amount mismatch")
	}

	flipped, err := uc.repo.MarkPaid(ctx, b.Reference, tx.Channel, uc.now())
	if err != nil {
		return nil, err
	}

	fresh, err := uc.lookup(ctx, b.Reference)
	if err != nil {
		return nil, err
	}

	if flipped {
		uc.logger.Info("payment verified",
			zap.String("reference", fresh.Reference),
			zap.String("channel", fresh.PaymentChannel),
		)
		// Best-effort: the dispatcher logs its own failures and never
		// propagates them into the confirmation.
		uc.notifier.PaymentConfirmed(fresh)
	}

	return fresh, nil
}
