package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func bodyLimitRouter(limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), BodyLimit(limit))
	r.POST("/routes", func(c *gin.Context) {
		var req struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.Status(http.StatusRequestEntityTooLarge)
				return
			}
			c.Status(http.StatusBadRequest)
			return
		}
		c.String(http.StatusCreated, req.Name)
	})
	r.GET("/routes", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestBodyLimit(t *testing.T) {
	oversized := `{"name":"` + strings.Repeat("x", 200) + `"}`

	tests := []struct {
		name          string
		method        string
		body          string
		contentLength int64
		wantStatus    int
		wantBody      string
	}{
		{"payload within limit", http.MethodPost, `{"name":"Morning pick"}`, 0, http.StatusCreated, "Morning pick"},
		{"declared length over limit", http.MethodPost, oversized, int64(len(oversized)), http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE"},
		{"streamed body over limit", http.MethodPost, oversized, -1, http.StatusRequestEntityTooLarge, ""},
		{"bodyless GET", http.MethodGet, "", 0, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/routes", strings.NewReader(tt.body))
			if tt.contentLength != 0 {
				req.ContentLength = tt.contentLength
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(RequestIDHeader, "req-limit")
			w := httptest.NewRecorder()
			bodyLimitRouter(100).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}

	t.Run("rejection carries the request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/routes", strings.NewReader(oversized))
		req.Header.Set(RequestIDHeader, "req-big")
		w := httptest.NewRecorder()
		bodyLimitRouter(100).ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "req-big")
	})
}
