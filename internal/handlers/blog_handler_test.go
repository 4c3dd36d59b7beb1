package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lightfieldlegal/lightfield-api/internal/middleware"
)

func newBlogReorderRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBlogHandler(nil, nil, nil, nil, zap.NewNop())

	r := gin.New()
	r.POST("/api/admin/blogs/reorder", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uint(1))
	}, h.Reorder)
	return r
}

func TestBlogReorderRejectsInvalidPayload(t *testing.T) {
	r := newBlogReorderRouter()

	cases := map[string]string{
		"empty items": `{"items":[]}`,
		"missing id":  `{"items":[{"order_priority":2}]}`,
		"no body":     ``,
	}

	for name, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/blogs/reorder", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, w.Code)
		}
	}
}
