package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lightfieldlegal/lightfield-api/internal/ai"
	"github.com/lightfieldlegal/lightfield-api/internal/audit"
	"github.com/lightfieldlegal/lightfield-api/internal/cache"
	"github.com/lightfieldlegal/lightfield-api/internal/httperr"
	"github.com/lightfieldlegal/lightfield-api/internal/httpresp"
	"github.com/lightfieldlegal/lightfield-api/internal/middleware"
	"github.com/lightfieldlegal/lightfield-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type BlogHandler struct {
	db        *gorm.DB
	views     *cache.ViewCounter
	assistant *ai.Assistant
	audit     *audit.Dispatcher
	logger    *zap.Logger
}

func NewBlogHandler(
	db *gorm.DB,
	views *cache.ViewCounter,
	assistant *ai.Assistant,
	auditd *audit.Dispatcher,
	logger *zap.Logger,
) *BlogHandler {
	return &BlogHandler{
		db:        db,
		views:     views,
		assistant: assistant,
		audit:     auditd,
		logger:    logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BlogPostRequest struct {
	Title   string `json:"title" binding:"required"`
	Slug    string `json:"slug"`
	Excerpt string `json:"excerpt"`
	Content string `json:"content" binding:"required"`

	CategoryIDs []uint `json:"category_ids"`

	FeaturedImageURL string `json:"featured_image_url"`
	MetaDescription  string `json:"meta_description"`
	MetaKeywords     string `json:"meta_keywords"`
	AIOverview       string `json:"ai_overview"`

	IsPublished bool       `json:"is_published"`
	IsFeatured  bool       `json:"is_featured"`
	PublishDate *time.Time `json:"publish_date"`
}

// ======================================================
// LIST
// ======================================================

func (h *BlogHandler) ListPublic(c *gin.Context) {
	h.list(c, false)
}

func (h *BlogHandler) ListAdmin(c *gin.Context) {
	h.list(c, true)
}

func (h *BlogHandler) list(c *gin.Context, admin bool) {
	q := h.db.Model(&models.BlogPost{}).
		Preload("Categories").
		Preload("Author")

	if !admin {
		q = q.Where("is_published = ? AND publish_date <= ?", true, time.Now())
	}

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("title ILIKE ? OR excerpt ILIKE ? OR content ILIKE ?", like, like, like)
	}
	if category := c.Query("category"); category != "" {
		q = q.Joins("JOIN blog_post_categories bpc ON bpc.blog_post_id = blog_posts.id").
			Joins("JOIN blog_categories bc ON bc.id = bpc.blog_category_id").
			Where("bc.slug = ?", category).
			Distinct("blog_posts.*")
	}
	if c.Query("is_featured") != "" {
		q = q.Where("is_featured = ?", true)
	}

	page, pageSize := pagination(c)

	var total int64
	q.Count(&total)

	var posts []models.BlogPost
	q.Order("publish_date DESC NULLS LAST").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts)

	httpresp.Page(c, posts, total, page, pageSize)
}

func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// ======================================================
// DETAIL
// ======================================================

// GetBySlug serves a published post and counts the view. Counting goes
// through the buffered counter, so the returned view_count may trail the
// real total by one flush interval.
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	var post models.BlogPost
	if err := h.db.
		Preload("Categories").
		Preload("Author").
		Where("slug = ? AND is_published = ?", slug, true).
		First(&post).Error; err != nil {
		httperr.NotFound(c, "post_not_found", "Blog post not found.")
		return
	}

	h.views.Record(c.Request.Context(), post.Slug)

	httpresp.OK(c, post)
}

func (h *BlogHandler) GetAdmin(c *gin.Context) {
	id := c.Param("id")

	var post models.BlogPost
	if err := h.db.
		Preload("Categories").
		Preload("Author").
		First(&post, id).Error; err != nil {
		httperr.NotFound(c, "post_not_found", "Blog post not found.")
		return
	}

	httpresp.OK(c, post)
}

// ======================================================
// CREATE / UPDATE / DELETE
// ======================================================

func (h *BlogHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	post := models.BlogPost{
		Title:            req.Title,
		Slug:             req.Slug,
		Excerpt:          req.Excerpt,
		Content:          req.Content,
		AuthorID:         userID,
		FeaturedImageURL: req.FeaturedImageURL,
		MetaDescription:  req.MetaDescription,
		MetaKeywords:     req.MetaKeywords,
		AIOverview:       req.AIOverview,
		IsPublished:      req.IsPublished,
		IsFeatured:       req.IsFeatured,
		PublishDate:      req.PublishDate,
	}
	if post.IsPublished && post.PublishDate == nil {
		now := time.Now()
		post.PublishDate = &now
	}

	if err := h.db.Create(&post).Error; err != nil {
		httperr.Internal(c, "failed_to_create_post", "Could not create blog post.")
		return
	}

	if err := h.replaceCategories(&post, req.CategoryIDs); err != nil {
		httperr.Internal(c, "failed_to_set_categories", "Could not attach categories.")
		return
	}

	// Missing overviews are filled in automatically; a model failure must
	// not fail the create.
	if post.AIOverview == "" && post.Content != "" {
		if overview, err := h.assistant.GenerateOverview(c.Request.Context(), post.Title, post.Content); err == nil {
			post.AIOverview = overview
			h.db.Model(&post).UpdateColumn("ai_overview", overview)
		} else {
			h.logger.Warn("ai overview generation failed",
				zap.String("slug", post.Slug),
				zap.Error(err),
			)
		}
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "blog_post_created",
		Entity:   "blog_post",
		EntityID: &post.ID,
	})

	httpresp.Created(c, post)
}

func (h *BlogHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var post models.BlogPost
	if err := h.db.First(&post, id).Error; err != nil {
		httperr.NotFound(c, "post_not_found", "Blog post not found.")
		return
	}

	var req BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	contentChanged := req.Content != post.Content

	post.Title = req.Title
	if req.Slug != "" {
		post.Slug = req.Slug
	}
	post.Excerpt = req.Excerpt
	post.Content = req.Content
	post.FeaturedImageURL = req.FeaturedImageURL
	post.MetaDescription = req.MetaDescription
	post.MetaKeywords = req.MetaKeywords
	if req.AIOverview != "" {
		post.AIOverview = req.AIOverview
	}
	post.IsFeatured = req.IsFeatured
	if req.PublishDate != nil {
		post.PublishDate = req.PublishDate
	}
	if req.IsPublished && !post.IsPublished && post.PublishDate == nil {
		now := time.Now()
		post.PublishDate = &now
	}
	post.IsPublished = req.IsPublished

	if err := h.db.Save(&post).Error; err != nil {
		httperr.Internal(c, "failed_to_update_post", "Could not update blog post.")
		return
	}

	if req.CategoryIDs != nil {
		if err := h.replaceCategories(&post, req.CategoryIDs); err != nil {
			httperr.Internal(c, "failed_to_set_categories", "Could not attach categories.")
			return
		}
	}

	// A rewritten body invalidates the stored overview unless the editor
	// supplied one themselves.
	if contentChanged && req.AIOverview == "" && post.Content != "" {
		if overview, err := h.assistant.GenerateOverview(c.Request.Context(), post.Title, post.Content); err == nil {
			post.AIOverview = overview
			h.db.Model(&post).UpdateColumn("ai_overview", overview)
		} else {
			h.logger.Warn("ai overview generation failed",
				zap.String("slug", post.Slug),
				zap.Error(err),
			)
		}
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "blog_post_updated",
		Entity:   "blog_post",
		EntityID: &post.ID,
	})

	httpresp.OK(c, post)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var post models.BlogPost
	if err := h.db.First(&post, id).Error; err != nil {
		httperr.NotFound(c, "post_not_found", "Blog post not found.")
		return
	}

	if err := h.db.Select("Categories").Delete(&post).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_post", "Could not delete blog post.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "blog_post_deleted",
		Entity:   "blog_post",
		EntityID: &post.ID,
	})

	httpresp.OK(c, gin.H{"deleted": true})
}

func (h *BlogHandler) Reorder(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := applyReorder(h.db, &models.BlogPost{}, req); err != nil {
		httperr.Internal(c, "failed_to_reorder", "Could not reorder blog posts.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: &userID,
		Action: "blog_posts_reordered",
		Entity: "blog_post",
	})

	httpresp.OK(c, gin.H{"reordered": len(req.Items)})
}

func (h *BlogHandler) replaceCategories(post *models.BlogPost, ids []uint) error {
	var categories []models.BlogCategory
	if len(ids) > 0 {
		if err := h.db.Find(&categories, ids).Error; err != nil {
			return err
		}
	}
	if err := h.db.Model(post).Association("Categories").Replace(categories); err != nil {
		return err
	}
	post.Categories = categories
	return nil
}
