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

type TestimonialHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewTestimonialHandler(db *gorm.DB, audit *audit.Dispatcher) *TestimonialHandler {
	return &TestimonialHandler{db: db, audit: audit}
}

type TestimonialRequest struct {
	ClientName    string `json:"client_name" binding:"required"`
	ClientTitle   string `json:"client_title"`
	ClientCompany string `json:"client_company"`
	Content       string `json:"content" binding:"required"`
	Rating        int    `json:"rating" binding:"omitempty,min=1,max=5"`
	ImageURL      string `json:"image_url"`

	OrderPriority int   `json:"order_priority"`
	IsActive      *bool `json:"is_active"`
}

func (h *TestimonialHandler) ListPublic(c *gin.Context) {
	var testimonials []models.Testimonial
	h.db.
		Where("is_active = ?", true).
		Order("order_priority ASC, created_at DESC").
		Find(&testimonials)

	httpresp.List(c, testimonials)
}

func (h *TestimonialHandler) ListAdmin(c *gin.Context) {
	var testimonials []models.Testimonial
	h.db.Order("order_priority ASC, created_at DESC").Find(&testimonials)

	httpresp.List(c, testimonials)
}

func (h *TestimonialHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	testimonial := models.Testimonial{
		ClientName:    req.ClientName,
		ClientTitle:   req.ClientTitle,
		ClientCompany: req.ClientCompany,
		Content:       req.Content,
		Rating:        req.Rating,
		ImageURL:      req.ImageURL,
		OrderPriority: req.OrderPriority,
		IsActive:      true,
	}
	if testimonial.Rating == 0 {
		testimonial.Rating = 5
	}
	if req.IsActive != nil {
		testimonial.IsActive = *req.IsActive
	}

	if err := h.db.Create(&testimonial).Error; err != nil {
		httperr.Internal(c, "failed_to_create_testimonial", "Could not create testimonial.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "testimonial_created",
		Entity:   "testimonial",
		EntityID: &testimonial.ID,
	})

	httpresp.Created(c, testimonial)
}

func (h *TestimonialHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var testimonial models.Testimonial
	if err := h.db.First(&testimonial, id).Error; err != nil {
		httperr.NotFound(c, "testimonial_not_found", "Testimonial not found.")
		return
	}

	var req TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	testimonial.ClientName = req.ClientName
	testimonial.ClientTitle = req.ClientTitle
	testimonial.ClientCompany = req.ClientCompany
	testimonial.Content = req.Content
	if req.Rating != 0 {
		testimonial.Rating = req.Rating
	}
	testimonial.ImageURL = req.ImageURL
	testimonial.OrderPriority = req.OrderPriority
	if req.IsActive != nil {
		testimonial.IsActive = *req.IsActive
	}

	if err := h.db.Save(&testimonial).Error; err != nil {
		httperr.Internal(c, "failed_to_update_testimonial", "Could not update testimonial.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "testimonial_updated",
		Entity:   "testimonial",
		EntityID: &testimonial.ID,
	})

	httpresp.OK(c, testimonial)
}

func (h *TestimonialHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var testimonial models.Testimonial
	if err := h.db.First(&testimonial, id).Error; err != nil {
		httperr.NotFound(c, "testimonial_not_found", "Testimonial not found.")
		return
	}

	if err := h.db.Delete(&testimonial).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_testimonial", "Could not delete testimonial.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "testimonial_deleted",
		Entity:   "testimonial",
		EntityID: &testimonial.ID,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}

func (h *TestimonialHandler) Reorder(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := applyReorder(h.db, &models.Testimonial{}, req); err != nil {
		httperr.Internal(c, "failed_to_reorder", "Could not reorder testimonials.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: &userID,
		Action: "testimonials_reordered",
		Entity: "testimonial",
	})

	httpresp.OK(c, gin.H{"reordered": len(req.Items)})
}
