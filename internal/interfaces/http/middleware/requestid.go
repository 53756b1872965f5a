package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/erp/sellerops/internal/infrastructure/logger"
)

const (
	RequestIDHeader = "X-Request-ID"
	// MaxRequestIDLength caps ids supplied by clients
	MaxRequestIDLength = 128

	requestIDKey = "request_id"
)

// RequestID keeps the client's X-Request-ID or mints one, echoes it back
// and puts it on the request context for the logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clampRequestID(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = strings.ReplaceAll(uuid.NewString(), "-", "")
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// GetRequestID falls back to the raw header when RequestID is not installed.
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(requestIDKey); id != "" {
		return id
	}
	return clampRequestID(c.GetHeader(RequestIDHeader))
}

func clampRequestID(id string) string {
	if len(id) > MaxRequestIDLength {
		return id[:MaxRequestIDLength]
	}
	return id
}
