// Package middleware provides HTTP middleware for the invoice service.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxRequestIDLength caps caller-supplied request IDs before they are
// attached to spans.
const MaxRequestIDLength = 128

// TracingConfig configures the server span middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// TracingWithConfig records a server span per request through otelgin and
// tags it with the request ID and, when a bearer token resolved one, the
// calling user. Span names carry the route pattern, so
// "GET /api/v1/invoices/:id" rather than the concrete URL.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	otelHandler := otelgin.Middleware(cfg.ServiceName)

	return func(c *gin.Context) {
		// otelgin runs the rest of the chain, so identity middleware
		// further down has already populated the context by the time
		// the span is tagged here.
		otelHandler(c)

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		if requestID := getRequestID(c); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		if userID := GetJWTUserID(c); userID != "" {
			span.SetAttributes(attribute.String("user_id", userID))
		}
	}
}

// getRequestID prefers the ID assigned by the RequestID middleware and
// falls back to the caller's header, truncated to a sane length.
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	headerID := c.GetHeader("X-Request-ID")
	if len(headerID) > MaxRequestIDLength {
		headerID = headerID[:MaxRequestIDLength]
	}
	return headerID
}

// SpanErrorMarker flags spans for 4xx and 5xx responses. It must sit after
// the tracing middleware so the span already exists.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			return
		}

		span.SetStatus(codes.Error, spanErrorReason(status))
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
}

func spanErrorReason(status int) string {
	switch {
	case status == http.StatusBadGateway:
		return "Bad Gateway"
	case status >= http.StatusInternalServerError:
		return "Internal Server Error"
	case status == http.StatusUnauthorized:
		return "Unauthorized"
	case status == http.StatusNotFound:
		return "Not Found"
	default:
		return "Client Error"
	}
}
