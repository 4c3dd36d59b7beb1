package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lightfieldlegal/lightfield-api/internal/audit"
	"github.com/lightfieldlegal/lightfield-api/internal/httperr"
	"github.com/lightfieldlegal/lightfield-api/internal/httpresp"
	"github.com/lightfieldlegal/lightfield-api/internal/middleware"
	"github.com/lightfieldlegal/lightfield-api/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

type ServiceRequest struct {
	Name             string `json:"name" binding:"required"`
	Slug             string `json:"slug"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
	Category         string `json:"category"`

	Price    float64 `json:"price" binding:"required,gt=0"`
	Currency string  `json:"currency"`

	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=15,max=480"`
	IconName        string `json:"icon_name"`
	ImageURL        string `json:"image_url"`

	OrderPriority int   `json:"order_priority"`
	IsActive      *bool `json:"is_active"`
	IsFeatured    bool  `json:"is_featured"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *ServiceHandler) ListPublic(c *gin.Context) {
	q := h.db.Where("is_active = ?", true)

	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var services []models.ConsultationService
	q.Order("order_priority ASC, name ASC").Find(&services)

	httpresp.List(c, services)
}

func (h *ServiceHandler) ListFeatured(c *gin.Context) {
	var services []models.ConsultationService
	h.db.
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("order_priority ASC, name ASC").
		Limit(6).
		Find(&services)

	httpresp.List(c, services)
}

func (h *ServiceHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	var service models.ConsultationService
	if err := h.db.
		Where("slug = ? AND is_active = ?", slug, true).
		First(&service).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Consultation service not found.")
		return
	}

	httpresp.OK(c, service)
}

// ======================================================
// ADMIN
// ======================================================

func (h *ServiceHandler) ListAdmin(c *gin.Context) {
	var services []models.ConsultationService
	h.db.Order("order_priority ASC, name ASC").Find(&services)

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	service := models.ConsultationService{
		Name:             req.Name,
		Slug:             req.Slug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Category:         req.Category,
		Price:            req.Price,
		Currency:         req.Currency,
		DurationMinutes:  req.DurationMinutes,
		IconName:         req.IconName,
		ImageURL:         req.ImageURL,
		OrderPriority:    req.OrderPriority,
		IsActive:         true,
		IsFeatured:       req.IsFeatured,
	}
	if service.Currency == "" {
		service.Currency = "NGN"
	}
	if service.DurationMinutes == 0 {
		service.DurationMinutes = 60
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "service_created",
		Entity:   "consultation_service",
		EntityID: &service.ID,
	})

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var service models.ConsultationService
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Consultation service not found.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	// Existing bookings keep their snapshotted amount; a price change here
	// only affects bookings created afterwards.
	service.Name = req.Name
	if req.Slug != "" {
		service.Slug = req.Slug
	}
	service.Description = req.Description
	service.ShortDescription = req.ShortDescription
	service.Category = req.Category
	service.Price = req.Price
	if req.Currency != "" {
		service.Currency = req.Currency
	}
	if req.DurationMinutes != 0 {
		service.DurationMinutes = req.DurationMinutes
	}
	service.IconName = req.IconName
	service.ImageURL = req.ImageURL
	service.OrderPriority = req.OrderPriority
	service.IsFeatured = req.IsFeatured
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "service_updated",
		Entity:   "consultation_service",
		EntityID: &service.ID,
	})

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var service models.ConsultationService
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Consultation service not found.")
		return
	}

	// Soft-disable instead of delete when bookings reference the service.
	var count int64
	h.db.Model(&models.ConsultationBooking{}).Where("service_id = ?", service.ID).Count(&count)
	if count > 0 {
		service.IsActive = false
		if err := h.db.Save(&service).Error; err != nil {
			httperr.Internal(c, "failed_to_delete_service", "Could not deactivate service.")
			return
		}

		h.audit.Dispatch(audit.Event{
			UserID:   &userID,
			Action:   "service_deactivated",
			Entity:   "consultation_service",
			EntityID: &service.ID,
		})

		httpresp.OK(c, gin.H{"deactivated": true})
		return
	}

	if err := h.db.Delete(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "service_deleted",
		Entity:   "consultation_service",
		EntityID: &service.ID,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}

func (h *ServiceHandler) Reorder(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := applyReorder(h.db, &models.ConsultationService{}, req); err != nil {
		httperr.Internal(c, "failed_to_reorder", "Could not reorder services.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: &userID,
		Action: "services_reordered",
		Entity: "consultation_service",
	})

	httpresp.OK(c, gin.H{"reordered": len(req.Items)})
}
