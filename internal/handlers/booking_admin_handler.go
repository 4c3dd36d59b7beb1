package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/lightfieldlegal/lightfield-api/internal/domain/booking"
	"github.com/lightfieldlegal/lightfield-api/internal/httperr"
	"github.com/lightfieldlegal/lightfield-api/internal/httpresp"
	"github.com/lightfieldlegal/lightfield-api/internal/middleware"
	booking "github.com/lightfieldlegal/lightfield-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingAdminHandler struct {
	repo     domain.Repository
	updateUC *booking.AdminUpdateBooking
}

func NewBookingAdminHandler(
	repo domain.Repository,
	updateUC *booking.AdminUpdateBooking,
) *BookingAdminHandler {
	return &BookingAdminHandler{
		repo:     repo,
		updateUC: updateUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AdminBookingUpdateRequest struct {
	Status         *string `json:"status"`
	AdminNotes     *string `json:"admin_notes"`
	AssociateID    *uint   `json:"associate_id"`
	ClearAssociate bool    `json:"clear_associate"`
}

// ======================================================
// LIST / DETAIL
// ======================================================

func (h *BookingAdminHandler) List(c *gin.Context) {
	filter := domain.ListFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_from", "date_from must be YYYY-MM-DD.")
			return
		}
		filter.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_to", "date_to must be YYYY-MM-DD.")
			return
		}
		filter.DateTo = &t
	}
	if sid := c.Query("service_id"); sid != "" {
		n, err := strconv.ParseUint(sid, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_service_id", "service_id must be numeric.")
			return
		}
		id := uint(n)
		filter.ServiceID = &id
	}

	bookings, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingAdminHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Booking id must be numeric.")
		return
	}

	b, err := h.repo.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// UPDATE
// ======================================================

func (h *BookingAdminHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Booking id must be numeric.")
		return
	}

	var req AdminBookingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in := booking.AdminUpdateInput{
		AdminNotes:     req.AdminNotes,
		AssociateID:    req.AssociateID,
		ClearAssociate: req.ClearAssociate,
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !status.IsValid() {
			httperr.BadRequest(c, "invalid_status", "Unknown booking status.")
			return
		}
		in.Status = &status
	}

	b, err := h.updateUC.Execute(c.Request.Context(), userID, uint(id), in)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, b)
}
