package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/erp/sellerops/internal/infrastructure/logger"
	"github.com/erp/sellerops/internal/infrastructure/telemetry"
)

type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// SkipPaths are never traced, e.g. health probes
	SkipPaths []string
}

// TracingWithConfig starts an otelgin server span named
// "METHOD /route/pattern" for every request outside SkipPaths.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return passthrough
	}
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}
	return otelgin.Middleware(cfg.ServiceName, otelgin.WithFilter(func(r *http.Request) bool {
		return !skip[r.URL.Path]
	}))
}

// TracingAttributeInjector copies the request id and the store or route id
// in the path onto the active span and the logging context. It must run
// inside the otelgin span.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var attrs []attribute.KeyValue
		if id := GetRequestID(c); id != "" {
			attrs = append(attrs, attribute.String("request_id", id))
		}
		if id := c.Param("storeId"); isUUID(id) {
			attrs = append(attrs, attribute.String(telemetry.SpanAttrStoreID, id))
			ctx = logger.WithStoreID(ctx, id)
		}
		if id := c.Param("id"); isUUID(id) && strings.Contains(c.FullPath(), "/routes/:id") {
			attrs = append(attrs, attribute.String(telemetry.SpanAttrRouteID, id))
			ctx = logger.WithRouteID(ctx, id)
		}
		if span := trace.SpanFromContext(ctx); span.IsRecording() {
			span.SetAttributes(attrs...)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// isUUID leaves malformed ids for the handler to reject
func isUUID(v string) bool {
	return v != "" && uuid.Validate(v) == nil
}

// SpanErrorMarker records the status of every 4xx and 5xx response on the
// span. Only 5xx sets the span status to Error.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		status := c.Writer.Status()
		if !span.IsRecording() || status < http.StatusBadRequest {
			return
		}
		span.SetAttributes(attribute.Int("http.status_code", status))
		if len(c.Errors) > 0 {
			span.SetAttributes(attribute.StringSlice("http.errors", c.Errors.Errors()))
		}
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
