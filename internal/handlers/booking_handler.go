package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/lightfieldlegal/lightfield-api/internal/domain/booking"
	"github.com/lightfieldlegal/lightfield-api/internal/httperr"
	"github.com/lightfieldlegal/lightfield-api/internal/httpresp"
	"github.com/lightfieldlegal/lightfield-api/internal/models"
	"github.com/lightfieldlegal/lightfield-api/internal/paystack"
	booking "github.com/lightfieldlegal/lightfield-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC *booking.CreateBooking
	verifyUC *booking.VerifyPayment
	repo     domain.Repository

	webhookSecret string
	logger        *zap.Logger
}

func NewBookingHandler(
	createUC *booking.CreateBooking,
	verifyUC *booking.VerifyPayment,
	repo domain.Repository,
	webhookSecret string,
	logger *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		createUC:      createUC,
		verifyUC:      verifyUC,
		repo:          repo,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID                *uint  `json:"service_id"`
	CustomServiceDescription string `json:"custom_service_description"`

	ClientName    string `json:"client_name" binding:"required"`
	ClientEmail   string `json:"client_email" binding:"required,email"`
	ClientPhone   string `json:"client_phone" binding:"required"`
	ClientCompany string `json:"client_company"`

	PreferredDate string `json:"preferred_date" binding:"required"`
	PreferredTime string `json:"preferred_time" binding:"required"`
	Notes         string `json:"notes"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

// writeBookingError maps business error codes onto HTTP statuses. Anything
// that is not a business error is an internal failure.
func writeBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, httperr.CodeValidation):
		httperr.BadRequest(c, httperr.CodeValidation, httperr.BusinessDetail(err))
	case httperr.IsBusiness(err, httperr.CodeNotFound):
		httperr.NotFound(c, httperr.CodeNotFound, httperr.BusinessDetail(err))
	case httperr.IsBusiness(err, httperr.CodeGatewayError):
		httperr.BadGateway(c, httperr.CodeGatewayError, "Payment provider is unavailable, please try again.")
	case httperr.IsBusiness(err, httperr.CodeAmountMismatch):
		httperr.BadRequest(c, httperr.CodeAmountMismatch, httperr.BusinessDetail(err))
	case httperr.IsBusiness(err, httperr.CodePaymentNotSuccessful):
		httperr.BadRequest(c, httperr.CodePaymentNotSuccessful, httperr.BusinessDetail(err))
	case httperr.IsBusiness(err, httperr.CodeInvalidTransition):
		httperr.BadRequest(c, httperr.CodeInvalidTransition, httperr.BusinessDetail(err))
	default:
		httperr.Internal(c, "internal_error", "Something went wrong.")
	}
}

// ======================================================
// PUBLIC
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	out, err := h.createUC.Execute(c.Request.Context(), booking.CreateBookingInput{
		ServiceID:                req.ServiceID,
		CustomServiceDescription: req.CustomServiceDescription,
		ClientName:               req.ClientName,
		ClientEmail:              req.ClientEmail,
		ClientPhone:              req.ClientPhone,
		ClientCompany:            req.ClientCompany,
		PreferredDate:            req.PreferredDate,
		PreferredTime:            req.PreferredTime,
		Notes:                    req.Notes,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.Created(c, out)
}

// Verify is the client-polled trigger, typically hit right after the hosted
// payment page redirects back.
func (h *BookingHandler) Verify(c *gin.Context) {
	reference := c.Param("reference")

	b, err := h.verifyUC.ExecutePoll(c.Request.Context(), reference)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, bookingStatusPayload(b))
}

// Status lets a client check a booking by its reference without triggering
// a gateway round trip.
func (h *BookingHandler) Status(c *gin.Context) {
	reference := c.Param("reference")

	b, err := h.repo.GetByReference(c.Request.Context(), reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not load booking.")
		return
	}

	httpresp.OK(c, bookingStatusPayload(b))
}

func bookingStatusPayload(b *models.ConsultationBooking) gin.H {
	return gin.H{
		"reference":        b.Reference,
		"status":           b.Status,
		"payment_verified": b.PaymentVerified,
		"service_name":     b.ServiceName(),
		"client_name":      b.ClientName,
		"preferred_date":   b.PreferredDate.Format("2006-01-02"),
		"preferred_time":   b.PreferredTime,
		"amount":           b.Amount,
		"currency":         b.Currency,
	}
}

// ======================================================
// WEBHOOK
// ======================================================

// Webhook receives the provider's push trigger. The signature check runs on
// the raw body before any parsing or database access; a bad signature ends
// the request immediately.
func (h *BookingHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httperr.BadRequest(c, "invalid_body", "Could not read request body.")
		return
	}

	signature := c.GetHeader(paystack.SignatureHeader)
	if !paystack.ValidateWebhookSignature(h.webhookSecret, body, signature) {
		h.logger.Warn("webhook signature validation failed",
			zap.String("ip", c.ClientIP()),
		)
		httperr.Unauthorized(c, httperr.CodeInvalidSignature, "Invalid webhook signature.")
		return
	}

	event, err := paystack.ParseWebhookEvent(body)
	if err != nil {
		httperr.BadRequest(c, "invalid_payload", "Could not parse webhook payload.")
		return
	}

	// Other event types are acknowledged without action so the provider
	// does not retry them.
	if event.Event != paystack.EventChargeSuccess {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	tx := &domain.Transaction{
		Status:  "success",
		Amount:  event.Data.Amount,
		Channel: event.Data.Channel,
	}

	if _, err := h.verifyUC.ExecuteWebhook(c.Request.Context(), event.Data.Reference, tx); err != nil {
		// Guard failures are logged but acknowledged: retrying a mismatched
		// amount will never make it match.
		h.logger.Warn("webhook reconciliation rejected",
			zap.String("reference", event.Data.Reference),
			zap.Error(err),
		)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
