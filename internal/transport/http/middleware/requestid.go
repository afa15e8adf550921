package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gblsmlo/lemind/internal/core/logger"
)

const KeyRequestID = "X-Request-ID"

// RequestID echoes a caller-supplied UUID or mints one. The id travels in the
// request context so loggers built with logger.For pick it up.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(KeyRequestID)
		if uuid.Validate(rid) != nil {
			rid = uuid.NewString()
		}
		c.Header(KeyRequestID, rid)
		c.Set(KeyRequestID, rid)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), rid))
		c.Next()
	}
}
