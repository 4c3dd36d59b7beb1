package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lightfieldlegal/lightfield-api/internal/ai"
	"github.com/lightfieldlegal/lightfield-api/internal/audit"
	"github.com/lightfieldlegal/lightfield-api/internal/cache"
	"github.com/lightfieldlegal/lightfield-api/internal/config"
	domain "github.com/lightfieldlegal/lightfield-api/internal/domain/booking"
	"github.com/lightfieldlegal/lightfield-api/internal/handlers"
	infraRepo "github.com/lightfieldlegal/lightfield-api/internal/infra/repository"
	"github.com/lightfieldlegal/lightfield-api/internal/middleware"
	"github.com/lightfieldlegal/lightfield-api/internal/notify"
	ucBooking "github.com/lightfieldlegal/lightfield-api/internal/usecase/booking"
)

// Deps carries the externally constructed clients whose lifecycle main owns.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Logger    *zap.Logger
	Gateway   domain.Gateway
	Mailer    notify.Mailer
	Generator ai.Generator
	Redis     *redis.Client
}

// Register wires the infra singletons, use cases and handlers onto the
// engine. It returns the view counter so main can drain it on shutdown.
func Register(r *gin.Engine, d Deps) *cache.ViewCounter {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORS(d.Config.AllowedOrigins))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)

	auditLogger := audit.New(d.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger, d.Logger)

	notifyDispatcher := notify.NewDispatcher(d.Mailer, d.Logger)
	bookingNotifier := notify.NewEmailBookingNotifier(notifyDispatcher, d.Config.AdminEmail)

	assistant := ai.NewAssistant(d.Generator)
	conversations := ai.NewConversationStore(d.DB, d.Logger)

	viewCounter := cache.NewViewCounter(d.Redis, d.DB, d.Logger)
	viewCounter.Start()

	// ======================================================
	// USE CASES (BOOKINGS)
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		d.Gateway,
		d.Logger,
		d.Config.DefaultConsultationFee,
		d.Config.DefaultCurrency,
	)

	verifyPaymentUC := ucBooking.NewVerifyPayment(
		bookingRepo,
		d.Gateway,
		bookingNotifier,
		d.Logger,
	)

	adminUpdateUC := ucBooking.NewAdminUpdateBooking(
		bookingRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config)
	associateHandler := handlers.NewAssociateHandler(d.DB, auditDispatcher)
	categoryHandler := handlers.NewCategoryHandler(d.DB, auditDispatcher)
	blogHandler := handlers.NewBlogHandler(d.DB, viewCounter, assistant, auditDispatcher, d.Logger)
	contactHandler := handlers.NewContactHandler(d.DB, notifyDispatcher, d.Config.AdminEmail, auditDispatcher)
	testimonialHandler := handlers.NewTestimonialHandler(d.DB, auditDispatcher)
	grantHandler := handlers.NewGrantHandler(d.DB, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(d.DB, auditDispatcher)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		verifyPaymentUC,
		bookingRepo,
		d.Config.PaystackSecretKey,
		d.Logger,
	)
	bookingAdminHandler := handlers.NewBookingAdminHandler(bookingRepo, adminUpdateUC)

	aiHandler := handlers.NewAIHandler(d.DB, assistant, conversations, d.Logger)
	dashboardHandler := handlers.NewDashboardHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// Submission-style endpoints get a tighter per-IP budget than reads.
	submitLimit := middleware.RateLimit(d.Logger, 10, 5)
	chatLimit := middleware.RateLimit(d.Logger, 20, 5)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/associates", associateHandler.ListPublic)
		api.GET("/associates/:slug", associateHandler.GetBySlug)

		api.GET("/categories", categoryHandler.List)

		api.GET("/blogs", blogHandler.ListPublic)
		api.GET("/blogs/:slug", blogHandler.GetBySlug)

		api.GET("/testimonials", testimonialHandler.ListPublic)

		api.GET("/grants", grantHandler.ListPublic)
		api.GET("/grants/featured", grantHandler.ListFeatured)
		api.GET("/grants/open", grantHandler.ListOpen)
		api.GET("/grants/:slug", grantHandler.GetBySlug)

		api.GET("/services", serviceHandler.ListPublic)
		api.GET("/services/featured", serviceHandler.ListFeatured)
		api.GET("/services/:slug", serviceHandler.GetBySlug)

		api.POST("/contact", submitLimit, contactHandler.Submit)

		// ------------------------------
		// BOOKINGS + PAYMENTS
		// ------------------------------
		api.POST("/bookings", submitLimit, bookingHandler.Create)
		api.POST("/bookings/verify/:reference", bookingHandler.Verify)
		api.GET("/bookings/:reference", bookingHandler.Status)

		api.POST("/payments/webhook", bookingHandler.Webhook)

		// ------------------------------
		// AI (PUBLIC)
		// ------------------------------
		api.POST("/solo/chat", chatLimit, aiHandler.SoloChat)
		api.POST("/ai/overview", chatLimit, aiHandler.GenerateOverview)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(d.Config), middleware.RequireStaff())
		{
			admin.GET("/me", authHandler.Me)

			admin.GET("/associates", associateHandler.ListAdmin)
			admin.POST("/associates", associateHandler.Create)
			admin.PUT("/associates/:id", associateHandler.Update)
			admin.DELETE("/associates/:id", associateHandler.Delete)
			admin.POST("/associates/reorder", associateHandler.Reorder)

			admin.POST("/categories", categoryHandler.Create)
			admin.PUT("/categories/:id", categoryHandler.Update)
			admin.DELETE("/categories/:id", categoryHandler.Delete)
			admin.POST("/categories/reorder", categoryHandler.Reorder)

			admin.GET("/blogs", blogHandler.ListAdmin)
			admin.GET("/blogs/:id", blogHandler.GetAdmin)
			admin.POST("/blogs", blogHandler.Create)
			admin.PUT("/blogs/:id", blogHandler.Update)
			admin.DELETE("/blogs/:id", blogHandler.Delete)
			admin.POST("/blogs/reorder", blogHandler.Reorder)

			admin.GET("/contacts", contactHandler.List)
			admin.GET("/contacts/:id", contactHandler.Get)
			admin.PATCH("/contacts/:id/status", contactHandler.UpdateStatus)
			admin.DELETE("/contacts/:id", contactHandler.Delete)

			admin.GET("/testimonials", testimonialHandler.ListAdmin)
			admin.POST("/testimonials", testimonialHandler.Create)
			admin.PUT("/testimonials/:id", testimonialHandler.Update)
			admin.DELETE("/testimonials/:id", testimonialHandler.Delete)
			admin.POST("/testimonials/reorder", testimonialHandler.Reorder)

			admin.GET("/grants", grantHandler.ListAdmin)
			admin.POST("/grants", grantHandler.Create)
			admin.PUT("/grants/:id", grantHandler.Update)
			admin.DELETE("/grants/:id", grantHandler.Delete)
			admin.POST("/grants/reorder", grantHandler.Reorder)

			admin.GET("/services", serviceHandler.ListAdmin)
			admin.POST("/services", serviceHandler.Create)
			admin.PUT("/services/:id", serviceHandler.Update)
			admin.DELETE("/services/:id", serviceHandler.Delete)
			admin.POST("/services/reorder", serviceHandler.Reorder)

			admin.GET("/bookings", bookingAdminHandler.List)
			admin.GET("/bookings/:id", bookingAdminHandler.Get)
			admin.PATCH("/bookings/:id", bookingAdminHandler.Update)

			admin.POST("/ai/assist", aiHandler.BlogAssist)
			admin.GET("/solo/analytics", aiHandler.SoloAnalytics)
			admin.GET("/solo/analytics/trends", aiHandler.SoloTrends)

			admin.GET("/dashboard/stats", dashboardHandler.Stats)
			admin.GET("/dashboard/trends/views", dashboardHandler.BlogViewsTrend)
			admin.GET("/dashboard/trends/posts", dashboardHandler.PostsTrend)
			admin.GET("/dashboard/posts-by-category", dashboardHandler.PostsByCategory)
			admin.GET("/dashboard/contacts-by-status", dashboardHandler.ContactsByStatus)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return viewCounter
}
