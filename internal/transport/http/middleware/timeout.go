package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/core/logger"
	resp "github.com/gblsmlo/lemind/internal/transport/http/response"
)

// Timeout bounds the store work of one request. Repositories receive the
// request context, so an expired deadline cancels their queries. A handler
// that wrote nothing by then gets CodeTimeout.
func Timeout(d time.Duration, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}
		logger.For(ctx, l).Warn("request deadline exceeded",
			zap.String("route", c.FullPath()), zap.Duration("limit", d))
		if !c.Writer.Written() {
			resp.Abort(c, resp.Error(resp.CodeTimeout, "request timed out"))
		}
	}
}
