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

// ======================================================
// HANDLER
// ======================================================

type AssociateHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAssociateHandler(db *gorm.DB, audit *audit.Dispatcher) *AssociateHandler {
	return &AssociateHandler{db: db, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type AssociateRequest struct {
	Name  string `json:"name" binding:"required"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Bio   string `json:"bio"`

	Expertise []string `json:"expertise"`

	ImageURL    string `json:"image_url"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	LinkedinURL string `json:"linkedin_url"`
	TwitterURL  string `json:"twitter_url"`

	OrderPriority int   `json:"order_priority"`
	IsActive      *bool `json:"is_active"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *AssociateHandler) ListPublic(c *gin.Context) {
	var associates []models.Associate
	h.db.
		Where("is_active = ?", true).
		Order("order_priority ASC, name ASC").
		Find(&associates)

	httpresp.List(c, associates)
}

func (h *AssociateHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	var assoc models.Associate
	if err := h.db.
		Where("slug = ? AND is_active = ?", slug, true).
		First(&assoc).Error; err != nil {
		httperr.NotFound(c, "associate_not_found", "Associate not found.")
		return
	}

	httpresp.OK(c, assoc)
}

// ======================================================
// ADMIN
// ======================================================

func (h *AssociateHandler) ListAdmin(c *gin.Context) {
	var associates []models.Associate
	h.db.Order("order_priority ASC, name ASC").Find(&associates)

	httpresp.List(c, associates)
}

func (h *AssociateHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req AssociateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	assoc := models.Associate{
		Name:          req.Name,
		Slug:          req.Slug,
		Title:         req.Title,
		Bio:           req.Bio,
		Expertise:     req.Expertise,
		ImageURL:      req.ImageURL,
		Email:         req.Email,
		Phone:         req.Phone,
		LinkedinURL:   req.LinkedinURL,
		TwitterURL:    req.TwitterURL,
		OrderPriority: req.OrderPriority,
		IsActive:      true,
	}
	if req.IsActive != nil {
		assoc.IsActive = *req.IsActive
	}

	if err := h.db.Create(&assoc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_associate", "Could not create associate.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "associate_created",
		Entity:   "associate",
		EntityID: &assoc.ID,
	})

	httpresp.Created(c, assoc)
}

func (h *AssociateHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var assoc models.Associate
	if err := h.db.First(&assoc, id).Error; err != nil {
		httperr.NotFound(c, "associate_not_found", "Associate not found.")
		return
	}

	var req AssociateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	assoc.Name = req.Name
	if req.Slug != "" {
		assoc.Slug = req.Slug
	}
	assoc.Title = req.Title
	assoc.Bio = req.Bio
	assoc.Expertise = req.Expertise
	assoc.ImageURL = req.ImageURL
	assoc.Email = req.Email
	assoc.Phone = req.Phone
	assoc.LinkedinURL = req.LinkedinURL
	assoc.TwitterURL = req.TwitterURL
	assoc.OrderPriority = req.OrderPriority
	if req.IsActive != nil {
		assoc.IsActive = *req.IsActive
	}

	if err := h.db.Save(&assoc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_associate", "Could not update associate.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "associate_updated",
		Entity:   "associate",
		EntityID: &assoc.ID,
	})

	httpresp.OK(c, assoc)
}

func (h *AssociateHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var assoc models.Associate
	if err := h.db.First(&assoc, id).Error; err != nil {
		httperr.NotFound(c, "associate_not_found", "Associate not found.")
		return
	}

	if err := h.db.Delete(&assoc).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_associate", "Could not delete associate.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "associate_deleted",
		Entity:   "associate",
		EntityID: &assoc.ID,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}

// Reorder persists a new display order in a single transaction.
func (h *AssociateHandler) Reorder(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := applyReorder(h.db, &models.Associate{}, req); err != nil {
		httperr.Internal(c, "failed_to_reorder", "Could not reorder associates.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: &userID,
		Action: "associates_reordered",
		Entity: "associate",
	})

	httpresp.OK(c, gin.H{"reordered": len(req.Items)})
}
