package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/sellerops/internal/infrastructure/logger"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var fromGin, fromCtx string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		fromGin = GetRequestID(c)
		fromCtx = logger.GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	call := func(header string) string {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if header != "" {
			req.Header.Set(RequestIDHeader, header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		return w.Header().Get(RequestIDHeader)
	}

	t.Run("mints an id", func(t *testing.T) {
		id := call("")
		assert.Len(t, id, 32)
		assert.Equal(t, id, fromGin)
		assert.Equal(t, id, fromCtx)
	})

	t.Run("keeps the client id", func(t *testing.T) {
		assert.Equal(t, "client-id-1", call("client-id-1"))
		assert.Equal(t, "client-id-1", fromCtx)
	})

	t.Run("truncates oversized ids", func(t *testing.T) {
		assert.Len(t, call(strings.Repeat("x", 500)), MaxRequestIDLength)
	})
}

func TestGetRequestID_WithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/ping", nil)
	c.Request.Header.Set(RequestIDHeader, strings.Repeat("y", 200))

	assert.Len(t, GetRequestID(c), MaxRequestIDLength)
}
