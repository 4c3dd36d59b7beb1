package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lightfieldlegal/lightfield-api/internal/ai"
	"github.com/lightfieldlegal/lightfield-api/internal/httperr"
	"github.com/lightfieldlegal/lightfield-api/internal/httpresp"
	"github.com/lightfieldlegal/lightfield-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AIHandler struct {
	db        *gorm.DB
	assistant *ai.Assistant
	store     *ai.ConversationStore
	logger    *zap.Logger
}

func NewAIHandler(
	db *gorm.DB,
	assistant *ai.Assistant,
	store *ai.ConversationStore,
	logger *zap.Logger,
) *AIHandler {
	return &AIHandler{
		db:        db,
		assistant: assistant,
		store:     store,
		logger:    logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BlogAssistRequest struct {
	Prompt  string          `json:"prompt" binding:"required"`
	Context *ai.BlogContext `json:"context"`
}

type OverviewRequest struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type SoloChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id"`
}

// ======================================================
// BLOG ASSISTANT (admin)
// ======================================================

func (h *AIHandler) BlogAssist(c *gin.Context) {
	var req BlogAssistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		httperr.BadRequest(c, "missing_prompt", "Prompt is required.")
		return
	}

	suggestion, err := h.assistant.BlogAssist(c.Request.Context(), prompt, req.Context)
	if err != nil {
		h.logger.Error("blog assist failed", zap.Error(err))
		httperr.BadGateway(c, "ai_unavailable", "The assistant is unavailable, please try again.")
		return
	}

	httpresp.OK(c, gin.H{
		"suggestion": suggestion,
		"prompt":     prompt,
	})
}

// ======================================================
// OVERVIEW GENERATION
// ======================================================

// GenerateOverview summarizes either a stored post (by slug, persisting the
// result) or ad-hoc title and content from a draft.
func (h *AIHandler) GenerateOverview(c *gin.Context) {
	var req OverviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var post *models.BlogPost
	title, content := req.Title, req.Content

	if req.Slug != "" {
		var p models.BlogPost
		if err := h.db.
			Where("slug = ? AND is_published = ?", req.Slug, true).
			First(&p).Error; err != nil {
			httperr.NotFound(c, "post_not_found", "Blog post not found.")
			return
		}
		post = &p
		title, content = p.Title, p.Content
	}

	if title == "" || content == "" {
		httperr.BadRequest(c, "missing_fields", "Title and content are required.")
		return
	}

	overview, err := h.assistant.GenerateOverview(c.Request.Context(), title, content)
	if err != nil {
		h.logger.Error("overview generation failed", zap.Error(err))
		httperr.BadGateway(c, "ai_unavailable", "The assistant is unavailable, please try again.")
		return
	}

	if post != nil {
		h.db.Model(post).UpdateColumn("ai_overview", overview)
	}

	httpresp.OK(c, gin.H{
		"overview": overview,
		"title":    title,
	})
}

// ======================================================
// SOLO CHAT (public, streaming)
// ======================================================

// SoloChat streams the assistant's answer as plain text chunks. The session
// id rides on the X-Session-Id header so the client can thread follow-ups.
func (h *AIHandler) SoloChat(c *gin.Context) {
	var req SoloChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		httperr.BadRequest(c, "missing_message", "Message is required.")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	conv, err := h.store.GetOrCreate(c.Request.Context(), sessionID)
	if err != nil {
		httperr.Internal(c, "conversation_error", "Could not load conversation.")
		return
	}

	stream, err := h.assistant.SoloChat(c.Request.Context(), message, h.store.History(conv))
	if err != nil {
		h.logger.Error("solo chat failed", zap.String("session_id", sessionID), zap.Error(err))
		httperr.BadGateway(c, "ai_unavailable", "The assistant is unavailable, please try again.")
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Header("X-Session-Id", sessionID)
	c.Status(http.StatusOK)

	start := time.Now()
	var full strings.Builder

	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			h.logger.Error("solo chat stream broke",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
			break
		}
		full.WriteString(chunk)
		c.Writer.WriteString(chunk)
		c.Writer.Flush()
	}

	// Persistence is best effort and runs against a fresh context: the
	// request context dies with the response, the bookkeeping should not.
	saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	answer := full.String()
	if answer != "" {
		if err := h.store.AppendExchange(saveCtx, conv, message, answer); err != nil {
			h.logger.Warn("conversation save failed",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		}
	}
	h.store.RecordAnalytics(saveCtx, &models.ChatAnalytics{
		SessionID:      sessionID,
		UserMessage:    message,
		AIResponse:     answer,
		ResponseTimeMs: time.Since(start).Milliseconds(),
	})
}

// ======================================================
// SOLO ANALYTICS (admin)
// ======================================================

func (h *AIHandler) SoloAnalytics(c *gin.Context) {
	var totalChats int64
	h.db.Model(&models.ChatAnalytics{}).Count(&totalChats)

	var uniqueSessions int64
	h.db.Model(&models.ChatAnalytics{}).Distinct("session_id").Count(&uniqueSessions)

	var avgResponseMs float64
	h.db.Model(&models.ChatAnalytics{}).
		Select("COALESCE(AVG(response_time_ms), 0)").
		Scan(&avgResponseMs)

	var recent []models.ChatAnalytics
	h.db.Order("created_at DESC").Limit(20).Find(&recent)

	httpresp.OK(c, gin.H{
		"total_chats":          totalChats,
		"unique_sessions":      uniqueSessions,
		"avg_response_time_ms": avgResponseMs,
		"recent":               recent,
	})
}

type chatDayStat struct {
	Day           time.Time `json:"day"`
	Chats         int64     `json:"chats"`
	AvgResponseMs float64   `json:"avg_response_ms"`
}

// SoloTrends charts chat volume and latency per day.
func (h *AIHandler) SoloTrends(c *gin.Context) {
	days := trendDays(c)
	since := time.Now().AddDate(0, 0, -days)

	var points []chatDayStat
	h.db.Model(&models.ChatAnalytics{}).
		Select("DATE(created_at) as day, COUNT(*) as chats, COALESCE(AVG(response_time_ms), 0) as avg_response_ms").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&points)

	httpresp.OK(c, gin.H{"days": days, "points": points})
}
