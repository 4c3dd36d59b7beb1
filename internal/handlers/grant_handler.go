package handlers

import (
	"time"

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

type GrantHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewGrantHandler(db *gorm.DB, audit *audit.Dispatcher) *GrantHandler {
	return &GrantHandler{db: db, audit: audit}
}

// ======================================================
// REQUESTS / RESPONSES
// ======================================================

type GrantRequest struct {
	Title     string `json:"title" binding:"required"`
	Slug      string `json:"slug"`
	GrantType string `json:"grant_type"`

	Amount   *float64 `json:"amount"`
	Currency string   `json:"currency"`

	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
	ImageURL         string `json:"image_url"`
	TargetAudience   string `json:"target_audience"`

	EligibilityCriteria []string `json:"eligibility_criteria"`
	Requirements        []string `json:"requirements"`
	Guidelines          []string `json:"guidelines"`
	TargetInstitutions  []string `json:"target_institutions"`

	ApplicationDeadline *time.Time `json:"application_deadline"`
	AnnouncementDate    *time.Time `json:"announcement_date"`

	Status string `json:"status" binding:"omitempty,oneof=upcoming open closed"`

	IsFeatured    bool  `json:"is_featured"`
	IsActive      *bool `json:"is_active"`
	OrderPriority int   `json:"order_priority"`
}

// GrantView decorates a grant with the deadline-derived fields the site
// renders.
type GrantView struct {
	models.Grant
	IsApplicationOpen bool   `json:"is_application_open"`
	DaysUntilDeadline *int   `json:"days_until_deadline"`
	FormattedAmount   string `json:"formatted_amount"`
}

func grantView(g models.Grant, now time.Time) GrantView {
	return GrantView{
		Grant:             g,
		IsApplicationOpen: g.IsApplicationOpen(now),
		DaysUntilDeadline: g.DaysUntilDeadline(now),
		FormattedAmount:   g.FormattedAmount(),
	}
}

func grantViews(grants []models.Grant) []GrantView {
	now := time.Now()
	out := make([]GrantView, 0, len(grants))
	for _, g := range grants {
		out = append(out, grantView(g, now))
	}
	return out
}

// ======================================================
// PUBLIC
// ======================================================

func (h *GrantHandler) ListPublic(c *gin.Context) {
	q := h.db.Where("is_active = ?", true)

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if grantType := c.Query("grant_type"); grantType != "" {
		q = q.Where("grant_type = ?", grantType)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("title ILIKE ? OR short_description ILIKE ?", like, like)
	}
	if c.Query("featured") == "true" {
		q = q.Where("is_featured = ?", true)
	}

	var grants []models.Grant
	q.Order("order_priority ASC, application_deadline ASC NULLS LAST").Find(&grants)

	httpresp.List(c, grantViews(grants))
}

func (h *GrantHandler) ListFeatured(c *gin.Context) {
	var grants []models.Grant
	h.db.
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("order_priority ASC").
		Limit(3).
		Find(&grants)

	httpresp.List(c, grantViews(grants))
}

func (h *GrantHandler) ListOpen(c *gin.Context) {
	var grants []models.Grant
	h.db.
		Where("is_active = ? AND status = ?", true, models.GrantStatusOpen).
		Order("application_deadline ASC NULLS LAST").
		Find(&grants)

	// Grants whose deadline passed but whose status has not been flipped
	// yet are filtered out here rather than shown as open.
	now := time.Now()
	open := make([]models.Grant, 0, len(grants))
	for _, g := range grants {
		if g.IsApplicationOpen(now) {
			open = append(open, g)
		}
	}

	httpresp.List(c, grantViews(open))
}

func (h *GrantHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	var grant models.Grant
	if err := h.db.
		Where("slug = ? AND is_active = ?", slug, true).
		First(&grant).Error; err != nil {
		httperr.NotFound(c, "grant_not_found", "Grant not found.")
		return
	}

	httpresp.OK(c, grantView(grant, time.Now()))
}

// ======================================================
// ADMIN
// ======================================================

func (h *GrantHandler) ListAdmin(c *gin.Context) {
	var grants []models.Grant
	h.db.Order("order_priority ASC, created_at DESC").Find(&grants)

	httpresp.List(c, grantViews(grants))
}

func (h *GrantHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	grant := models.Grant{
		Title:               req.Title,
		Slug:                req.Slug,
		GrantType:           req.GrantType,
		Amount:              req.Amount,
		Currency:            req.Currency,
		ShortDescription:    req.ShortDescription,
		Description:         req.Description,
		ImageURL:            req.ImageURL,
		TargetAudience:      req.TargetAudience,
		EligibilityCriteria: req.EligibilityCriteria,
		Requirements:        req.Requirements,
		Guidelines:          req.Guidelines,
		TargetInstitutions:  req.TargetInstitutions,
		ApplicationDeadline: req.ApplicationDeadline,
		AnnouncementDate:    req.AnnouncementDate,
		Status:              req.Status,
		IsFeatured:          req.IsFeatured,
		IsActive:            true,
		OrderPriority:       req.OrderPriority,
	}
	if grant.Status == "" {
		grant.Status = models.GrantStatusUpcoming
	}
	if grant.Currency == "" {
		grant.Currency = "NGN"
	}
	if req.IsActive != nil {
		grant.IsActive = *req.IsActive
	}

	if err := h.db.Create(&grant).Error; err != nil {
		httperr.Internal(c, "failed_to_create_grant", "Could not create grant.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "grant_created",
		Entity:   "grant",
		EntityID: &grant.ID,
	})

	httpresp.Created(c, grantView(grant, time.Now()))
}

func (h *GrantHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var grant models.Grant
	if err := h.db.First(&grant, id).Error; err != nil {
		httperr.NotFound(c, "grant_not_found", "Grant not found.")
		return
	}

	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	grant.Title = req.Title
	if req.Slug != "" {
		grant.Slug = req.Slug
	}
	grant.GrantType = req.GrantType
	grant.Amount = req.Amount
	if req.Currency != "" {
		grant.Currency = req.Currency
	}
	grant.ShortDescription = req.ShortDescription
	grant.Description = req.Description
	grant.ImageURL = req.ImageURL
	grant.TargetAudience = req.TargetAudience
	grant.EligibilityCriteria = req.EligibilityCriteria
	grant.Requirements = req.Requirements
	grant.Guidelines = req.Guidelines
	grant.TargetInstitutions = req.TargetInstitutions
	grant.ApplicationDeadline = req.ApplicationDeadline
	grant.AnnouncementDate = req.AnnouncementDate
	if req.Status != "" {
		grant.Status = req.Status
	}
	grant.IsFeatured = req.IsFeatured
	grant.OrderPriority = req.OrderPriority
	if req.IsActive != nil {
		grant.IsActive = *req.IsActive
	}

	if err := h.db.Save(&grant).Error; err != nil {
		httperr.Internal(c, "failed_to_update_grant", "Could not update grant.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "grant_updated",
		Entity:   "grant",
		EntityID: &grant.ID,
	})

	httpresp.OK(c, grantView(grant, time.Now()))
}

func (h *GrantHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var grant models.Grant
	if err := h.db.First(&grant, id).Error; err != nil {
		httperr.NotFound(c, "grant_not_found", "Grant not found.")
		return
	}

	if err := h.db.Delete(&grant).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_grant", "Could not delete grant.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "grant_deleted",
		Entity:   "grant",
		EntityID: &grant.ID,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}

func (h *GrantHandler) Reorder(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := applyReorder(h.db, &models.Grant{}, req); err != nil {
		httperr.Internal(c, "failed_to_reorder", "Could not reorder grants.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: &userID,
		Action: "grants_reordered",
		Entity: "grant",
	})

	httpresp.OK(c, gin.H{"reordered": len(req.Items)})
}
