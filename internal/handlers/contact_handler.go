package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lightfieldlegal/lightfield-api/internal/audit"
	"github.com/lightfieldlegal/lightfield-api/internal/httperr"
	"github.com/lightfieldlegal/lightfield-api/internal/httpresp"
	"github.com/lightfieldlegal/lightfield-api/internal/middleware"
	"github.com/lightfieldlegal/lightfield-api/internal/models"
	"github.com/lightfieldlegal/lightfield-api/internal/notify"
	"github.com/lightfieldlegal/lightfield-api/internal/validators"
)

type ContactHandler struct {
	db         *gorm.DB
	dispatcher *notify.Dispatcher
	adminEmail string
	audit      *audit.Dispatcher
}

func NewContactHandler(
	db *gorm.DB,
	dispatcher *notify.Dispatcher,
	adminEmail string,
	auditd *audit.Dispatcher,
) *ContactHandler {
	return &ContactHandler{
		db:         db,
		dispatcher: dispatcher,
		adminEmail: adminEmail,
		audit:      auditd,
	}
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type ContactStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=unread read responded"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to be valid.")
		return
	}

	submission := models.ContactSubmission{
		Name:    req.Name,
		Email:   email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.ContactStatusUnread,
	}

	if err := h.db.Create(&submission).Error; err != nil {
		httperr.Internal(c, "failed_to_submit", "Could not submit your message.")
		return
	}

	h.dispatcher.Dispatch(notify.Message{
		To:      h.adminEmail,
		Subject: fmt.Sprintf("New Contact Submission: %s", submission.Subject),
		HTML: fmt.Sprintf(
			"<p><strong>From:</strong> %s &lt;%s&gt;</p><p><strong>Phone:</strong> %s</p><p>%s</p>",
			submission.Name, submission.Email, submission.Phone, submission.Message,
		),
	})

	httpresp.Created(c, gin.H{
		"id":      submission.ID,
		"message": "Thank you for reaching out. We will get back to you shortly.",
	})
}

// ======================================================
// ADMIN
// ======================================================

func (h *ContactHandler) List(c *gin.Context) {
	q := h.db.Model(&models.ContactSubmission{})

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ? OR subject ILIKE ?", like, like, like)
	}

	page, pageSize := pagination(c)

	var total int64
	q.Count(&total)

	var submissions []models.ContactSubmission
	q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&submissions)

	httpresp.Page(c, submissions, total, page, pageSize)
}

func (h *ContactHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var submission models.ContactSubmission
	if err := h.db.First(&submission, id).Error; err != nil {
		httperr.NotFound(c, "submission_not_found", "Contact submission not found.")
		return
	}

	httpresp.OK(c, submission)
}

func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var submission models.ContactSubmission
	if err := h.db.First(&submission, id).Error; err != nil {
		httperr.NotFound(c, "submission_not_found", "Contact submission not found.")
		return
	}

	var req ContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	submission.Status = req.Status
	if err := h.db.Save(&submission).Error; err != nil {
		httperr.Internal(c, "failed_to_update", "Could not update submission.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "contact_status_updated",
		Entity:   "contact_submission",
		EntityID: &submission.ID,
		Metadata: map[string]any{"status": submission.Status},
	})

	httpresp.OK(c, submission)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var submission models.ContactSubmission
	if err := h.db.First(&submission, id).Error; err != nil {
		httperr.NotFound(c, "submission_not_found", "Contact submission not found.")
		return
	}

	if err := h.db.Delete(&submission).Error; err != nil {
		httperr.Internal(c, "failed_to_delete", "Could not delete submission.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "contact_deleted",
		Entity:   "contact_submission",
		EntityID: &submission.ID,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}
