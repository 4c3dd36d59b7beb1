package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTrendDays(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query string
		want  int
	}{
		{"", 30},
		{"days=7", 7},
		{"days=365", 365},
		{"days=9999", 365},
		{"days=0", 30},
		{"days=-5", 30},
		{"days=abc", 30},
	}

	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/stats?"+tc.query, nil)

		if got := trendDays(c); got != tc.want {
			t.Errorf("trendDays(%q) = %d, want %d", tc.query, got, tc.want)
		}
	}
}
