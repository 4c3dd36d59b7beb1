package booking

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "github.com/lightfieldlegal/lightfield-api/internal/domain/booking"
	"github.com/lightfieldlegal/lightfield-api/internal/httperr"
	"github.com/lightfieldlegal/lightfield-api/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	ServiceID                *uint
	CustomServiceDescription string

	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ClientCompany string

	PreferredDate string // 2006-01-02
	PreferredTime string // 15:04
	Notes         string
}

type CreateBookingOutput struct {
	Reference        string  `json:"reference"`
	AccessCode       string  `json:"access_code"`
	AuthorizationURL string  `json:"authorization_url"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
}

// ======================================================
// USE CASE
// ======================================================

// CreateBooking validates a public booking request, snapshots the price and
// initializes the hosted payment transaction. A failed initialization rolls
// the booking row back so no half-created booking survives.
type CreateBooking struct {
	repo    domain.Repository
	gateway domain.Gateway
	logger  *zap.Logger

	defaultFee      float64
	defaultCurrency string

	now func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	gateway domain.Gateway,
	logger *zap.Logger,
	defaultFee float64,
	defaultCurrency string,
) *CreateBooking {
	return &CreateBooking{
		repo:            repo,
		gateway:         gateway,
		logger:          logger,
		defaultFee:      defaultFee,
		defaultCurrency: defaultCurrency,
		now:             time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingOutput, error) {

	customDesc := strings.TrimSpace(in.CustomServiceDescription)
	if in.ServiceID == nil && customDesc == "" {
		return nil, httperr.ErrBusinessf(
			httperr.CodeValidation,
			"either a service must be selected or a custom description provided",
		)
	}

	preferredDate, err := time.Parse("2006-01-02", in.PreferredDate)
	if err != nil {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "invalid preferred_date")
	}
	if _, err := time.Parse("15:04", in.PreferredTime); err != nil {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "invalid preferred_time")
	}

	// Strictly future: a booking for today is rejected.
	today := uc.now().Truncate(24 * time.Hour)
	if !preferredDate.After(today) {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "preferred date must be in the future")
	}

	// Price snapshot: the amount is fixed here and never re-derived, so a
	// later service price change cannot alter an existing booking.
	var service *models.ConsultationService
	amount := uc.defaultFee
	currency := uc.defaultCurrency

	if in.ServiceID != nil {
		service, err = uc.repo.GetActiveService(ctx, *in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusinessf(httperr.CodeValidation, "selected service not found or inactive")
		}
		amount = service.Price
		currency = service.Currency
	}

	b := &models.ConsultationBooking{
		Reference:                domain.NewReference(),
		CustomServiceDescription: customDesc,
		ClientName:               in.ClientName,
		ClientEmail:              in.ClientEmail,
		ClientPhone:              in.ClientPhone,
		ClientCompany:            in.ClientCompany,
		PreferredDate:            preferredDate,
		PreferredTime:            in.PreferredTime,
		Notes:                    in.Notes,
		Amount:                   amount,
		Currency:                 currency,
		Status:                   string(domain.StatusPendingPayment),
	}
	if service != nil {
		b.ServiceID = &service.ID
		b.Service = service
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	init, err := uc.gateway.Initialize(
		ctx,
		b.ClientEmail,
		b.AmountMinor(),
		b.Reference,
		map[string]string{
			"booking_reference": b.Reference,
			"service_name":      b.ServiceName(),
			"client_name":       b.ClientName,
		},
	)
	if err != nil {
		// Compensating rollback: no booking survives a failed init.
		if delErr := uc.repo.DeleteBooking(ctx, b); delErr != nil {
			uc.logger.Error("booking rollback failed",
				zap.String("reference", b.Reference),
				zap.Error(delErr),
			)
		}
		return nil, httperr.ErrBusinessf(httperr.CodeGatewayError, err.Error())
	}

	b.ProviderAccessCode = init.AccessCode
	b.ProviderReference = init.Reference
	if b.ProviderReference == "" {
		b.ProviderReference = b.Reference
	}
	if err := uc.repo.SaveProviderHandles(ctx, b); err != nil {
		return nil, err
	}

	uc.logger.Info("booking created",
		zap.String("reference", b.Reference),
		zap.Float64("amount", b.Amount),
		zap.String("currency", b.Currency),
	)

	return &CreateBookingOutput{
		Reference:        b.Reference,
		AccessCode:       b.ProviderAccessCode,
		AuthorizationURL: init.AuthorizationURL,
		Amount:           b.Amount,
		Currency:         b.Currency,
	}, nil
}
