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

type CategoryHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCategoryHandler(db *gorm.DB, audit *audit.Dispatcher) *CategoryHandler {
	return &CategoryHandler{db: db, audit: audit}
}

type CategoryRequest struct {
	Name          string `json:"name" binding:"required"`
	Slug          string `json:"slug"`
	Description   string `json:"description"`
	OrderPriority int    `json:"order_priority"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.BlogCategory
	h.db.Order("order_priority ASC, name ASC").Find(&categories)

	httpresp.List(c, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	category := models.BlogCategory{
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		OrderPriority: req.OrderPriority,
	}

	if err := h.db.Create(&category).Error; err != nil {
		httperr.BadRequest(c, "failed_to_create_category", "Could not create category, name may already exist.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "category_created",
		Entity:   "blog_category",
		EntityID: &category.ID,
	})

	httpresp.Created(c, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var category models.BlogCategory
	if err := h.db.First(&category, id).Error; err != nil {
		httperr.NotFound(c, "category_not_found", "Category not found.")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	category.Name = req.Name
	if req.Slug != "" {
		category.Slug = req.Slug
	}
	category.Description = req.Description
	category.OrderPriority = req.OrderPriority

	if err := h.db.Save(&category).Error; err != nil {
		httperr.Internal(c, "failed_to_update_category", "Could not update category.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "category_updated",
		Entity:   "blog_category",
		EntityID: &category.ID,
	})

	httpresp.OK(c, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var category models.BlogCategory
	if err := h.db.First(&category, id).Error; err != nil {
		httperr.NotFound(c, "category_not_found", "Category not found.")
		return
	}

	if err := h.db.Delete(&category).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_category", "Could not delete category.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "category_deleted",
		Entity:   "blog_category",
		EntityID: &category.ID,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}

func (h *CategoryHandler) Reorder(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := applyReorder(h.db, &models.BlogCategory{}, req); err != nil {
		httperr.Internal(c, "failed_to_reorder", "Could not reorder categories.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: &userID,
		Action: "categories_reordered",
		Entity: "blog_category",
	})

	httpresp.OK(c, gin.H{"reordered": len(req.Items)})
}
