package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// ContextKeyRequestID is the gin context key holding the request id
const ContextKeyRequestID = "request_id"

// RequestID tags every request with a UUID, honoring an inbound
// X-Request-ID so upstream proxies can correlate logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ContextKeyRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID retrieves the request id from context
func GetRequestID(c *gin.Context) (string, bool) {
	id, exists := c.Get(ContextKeyRequestID)
	if !exists {
		return "", false
	}
	s, ok := id.(string)
	return s, ok
}
