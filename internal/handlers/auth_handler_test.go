package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lightfieldlegal/lightfield-api/internal/config"
)

const testJWTSecret = "test-jwt-secret"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(nil, &config.Config{JWTSecret: testJWTSecret})

	r := gin.New()
	r.POST("/api/auth/refresh", h.Refresh)
	return r
}

func issueTestToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       uint(42),
		"staff":     true,
		"superuser": false,
		"exp":       exp.Unix(),
		"iat":       time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func postRefresh(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRefreshIssuesNewTokenWithSameIdentity(t *testing.T) {
	r := newAuthRouter()
	old := issueTestToken(t, testJWTSecret, time.Now().Add(time.Hour))

	w := postRefresh(r, "Bearer "+old)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("no token in response")
	}

	parsed, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("refreshed token does not validate: %v", err)
	}

	claims := parsed.Claims.(jwt.MapClaims)
	if sub, _ := claims["sub"].(float64); uint(sub) != 42 {
		t.Errorf("sub = %v, want 42", claims["sub"])
	}
	if staff, _ := claims["staff"].(bool); !staff {
		t.Error("staff claim lost on refresh")
	}
	if superuser, _ := claims["superuser"].(bool); superuser {
		t.Error("superuser claim gained on refresh")
	}

	exp, _ := claims["exp"].(float64)
	if time.Unix(int64(exp), 0).Before(time.Now().Add(23 * time.Hour)) {
		t.Error("refreshed token should carry a full expiry window")
	}
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	r := newAuthRouter()
	expired := issueTestToken(t, testJWTSecret, time.Now().Add(-time.Hour))

	if w := postRefresh(r, "Bearer "+expired); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, expired tokens must not refresh", w.Code)
	}
}

func TestRefreshRejectsForeignToken(t *testing.T) {
	r := newAuthRouter()
	foreign := issueTestToken(t, "some-other-secret", time.Now().Add(time.Hour))

	if w := postRefresh(r, "Bearer "+foreign); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRefreshRequiresBearerHeader(t *testing.T) {
	r := newAuthRouter()

	for name, header := range map[string]string{
		"missing":    "",
		"not bearer": "Basic abc",
		"garbage":    "Bearer not.a.token",
	} {
		if w := postRefresh(r, header); w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, w.Code)
		}
	}
}
