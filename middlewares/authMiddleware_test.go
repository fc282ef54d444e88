package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/simailhq/simail_backend/middlewares"
)

func newAuthEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middlewares.AuthMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	r := newAuthEngine()

	// Headers shorter than the scheme prefix or with the wrong scheme
	// must get a clean 401, never a slice panic.
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header passes through", "", http.StatusOK},
		{"shorter than prefix", "abc", http.StatusUnauthorized},
		{"wrong scheme", "Basic dXNlcjpwdw==", http.StatusUnauthorized},
		{"prefix only", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d (header %q)", w.Code, tc.want, tc.header)
			}
		})
	}
}
