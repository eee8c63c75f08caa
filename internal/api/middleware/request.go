package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/launchdock/backend/internal/shared/id"
)

// RequestIDKey is the gin context key holding the request ID.
const RequestIDKey = "request_id"

// RequestIDHeader is the response header carrying the request ID.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request a fresh ID, exposed to handlers through
// the gin context and to clients through the response header. Inbound IDs
// are ignored so the ID always identifies exactly one server-side request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := id.NewRequestID().String()
		c.Set(RequestIDKey, rid)
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Next()
	}
}
