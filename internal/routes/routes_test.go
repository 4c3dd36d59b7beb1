package routes

import (
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lightfieldlegal/lightfield-api/internal/config"
)

// TestRegisterRouteTable pins the API surface so a route cannot silently
// disappear during a refactor.
func TestRegisterRouteTable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	vc := Register(r, Deps{
		Config: &config.Config{AllowedOrigins: []string{"*"}},
		Logger: zap.NewNop(),
	})
	defer vc.Stop()

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	want := []string{
		"POST /api/auth/login",
		"POST /api/auth/refresh",
		"GET /api/admin/me",

		"GET /api/blogs",
		"GET /api/blogs/:slug",
		"POST /api/admin/blogs",
		"POST /api/admin/blogs/reorder",

		"GET /api/services/featured",
		"GET /api/grants/featured",
		"GET /api/grants/open",
		"POST /api/admin/grants/reorder",

		"POST /api/contact",
		"GET /api/admin/contacts/:id",

		"POST /api/bookings",
		"POST /api/bookings/verify/:reference",
		"GET /api/bookings/:reference",
		"POST /api/payments/webhook",
		"GET /api/admin/bookings",
		"PATCH /api/admin/bookings/:id",

		"POST /api/solo/chat",
		"GET /api/admin/solo/analytics",
		"GET /api/admin/solo/analytics/trends",

		"GET /api/admin/dashboard/stats",
		"GET /api/admin/dashboard/trends/views",
		"GET /api/admin/dashboard/trends/posts",
		"GET /api/admin/dashboard/posts-by-category",
		"GET /api/admin/dashboard/contacts-by-status",
		"GET /api/admin/audit-logs",
	}

	for _, route := range want {
		if !registered[route] {
			t.Errorf("route %s is not registered", route)
		}
	}
}
