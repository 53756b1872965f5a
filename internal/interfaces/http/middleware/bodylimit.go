package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erp/sellerops/internal/interfaces/http/dto"
)

// BodyLimit caps request payloads at limit bytes. A declared Content-Length
// over the cap is refused up front; undeclared bodies fail on read with
// *http.MaxBytesError, which the handlers map to 413.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := c.Request
		if req.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRequestTooLarge,
				"Payload is larger than the accepted limit",
				GetRequestID(c),
			))
			return
		}
		if req.Body != nil && req.Body != http.NoBody {
			req.Body = http.MaxBytesReader(c.Writer, req.Body, limit)
		}
		c.Next()
	}
}
