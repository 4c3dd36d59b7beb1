package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lightfieldlegal/lightfield-api/internal/httpresp"
	"github.com/lightfieldlegal/lightfield-api/internal/models"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type serviceBookingCount struct {
	ServiceName string `json:"service_name"`
	Bookings    int64  `json:"bookings"`
}

type dayCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

// trendDays reads the requested window size, clamped to a year.
func trendDays(c *gin.Context) int {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 {
		days = 30
	}
	if days > 365 {
		days = 365
	}
	return days
}

// Stats aggregates the numbers the admin dashboard renders on load.
func (h *DashboardHandler) Stats(c *gin.Context) {
	var bookingsByStatus []statusCount
	h.db.Model(&models.ConsultationBooking{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&bookingsByStatus)

	var totalBookings int64
	h.db.Model(&models.ConsultationBooking{}).Count(&totalBookings)

	// Revenue counts verified payments only, pending initializations carry
	// no money.
	var verifiedRevenue float64
	h.db.Model(&models.ConsultationBooking{}).
		Where("payment_verified = ?", true).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&verifiedRevenue)

	monthStart := time.Now().AddDate(0, 0, -30)
	var bookingsLast30Days int64
	h.db.Model(&models.ConsultationBooking{}).
		Where("created_at >= ?", monthStart).
		Count(&bookingsLast30Days)

	var unreadContacts int64
	h.db.Model(&models.ContactSubmission{}).
		Where("status = ?", models.ContactStatusUnread).
		Count(&unreadContacts)

	var publishedPosts int64
	h.db.Model(&models.BlogPost{}).
		Where("is_published = ?", true).
		Count(&publishedPosts)

	var totalViews int64
	h.db.Model(&models.BlogPost{}).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&totalViews)

	var openGrants int64
	h.db.Model(&models.Grant{}).
		Where("is_active = ? AND status = ?", true, models.GrantStatusOpen).
		Count(&openGrants)

	var popularServices []serviceBookingCount
	h.db.Model(&models.ConsultationBooking{}).
		Select("consultation_services.name as service_name, COUNT(*) as bookings").
		Joins("JOIN consultation_services ON consultation_services.id = consultation_bookings.service_id").
		Where("consultation_bookings.payment_verified = ?", true).
		Group("consultation_services.name").
		Order("bookings DESC").
		Limit(5).
		Scan(&popularServices)

	var recentBookings []models.ConsultationBooking
	h.db.
		Preload("Service").
		Order("created_at DESC").
		Limit(10).
		Find(&recentBookings)

	httpresp.OK(c, gin.H{
		"bookings": gin.H{
			"total":            totalBookings,
			"by_status":        bookingsByStatus,
			"last_30_days":     bookingsLast30Days,
			"revenue":          verifiedRevenue,
			"popular_services": popularServices,
			"recent":           recentBookings,
		},
		"contacts": gin.H{
			"unread": unreadContacts,
		},
		"blog": gin.H{
			"published_posts": publishedPosts,
			"total_views":     totalViews,
		},
		"grants": gin.H{
			"open": openGrants,
		},
	})
}

// ======================================================
// TRENDS
// ======================================================

// BlogViewsTrend charts the per-day view rollups the view counter writes.
func (h *DashboardHandler) BlogViewsTrend(c *gin.Context) {
	days := trendDays(c)
	since := time.Now().UTC().AddDate(0, 0, -days)

	var points []models.BlogViewStat
	h.db.
		Where("date >= ?", since).
		Order("date ASC").
		Find(&points)

	httpresp.OK(c, gin.H{"days": days, "points": points})
}

// PostsTrend counts published posts per publish day.
func (h *DashboardHandler) PostsTrend(c *gin.Context) {
	days := trendDays(c)
	since := time.Now().AddDate(0, 0, -days)

	var points []dayCount
	h.db.Model(&models.BlogPost{}).
		Select("DATE(publish_date) as day, COUNT(*) as count").
		Where("is_published = ? AND publish_date >= ?", true, since).
		Group("DATE(publish_date)").
		Order("day ASC").
		Scan(&points)

	httpresp.OK(c, gin.H{"days": days, "points": points})
}

type categoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

func (h *DashboardHandler) PostsByCategory(c *gin.Context) {
	var rows []categoryCount
	h.db.Model(&models.BlogPost{}).
		Select("blog_categories.name as category, COUNT(*) as count").
		Joins("JOIN blog_post_categories bpc ON bpc.blog_post_id = blog_posts.id").
		Joins("JOIN blog_categories ON blog_categories.id = bpc.blog_category_id").
		Where("blog_posts.is_published = ?", true).
		Group("blog_categories.name").
		Order("count DESC").
		Scan(&rows)

	httpresp.List(c, rows)
}

func (h *DashboardHandler) ContactsByStatus(c *gin.Context) {
	var rows []statusCount
	h.db.Model(&models.ContactSubmission{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows)

	httpresp.List(c, rows)
}
