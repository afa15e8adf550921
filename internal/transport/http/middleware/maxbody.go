package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	resp "github.com/gblsmlo/lemind/internal/transport/http/response"
)

// MaxBodyBytes caps request bodies. JSON inputs are small; multipart bodies
// (avatar uploads) get uploadLimit.
func MaxBodyBytes(jsonLimit, uploadLimit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := jsonLimit
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			limit = uploadLimit
		}
		if c.Request.ContentLength > limit {
			resp.Abort(c, resp.Error(resp.CodeBadRequest, "request body too large"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()

		var tooLarge *http.MaxBytesError
		for _, e := range c.Errors {
			if errors.As(e.Err, &tooLarge) && !c.Writer.Written() {
				resp.Abort(c, resp.Error(resp.CodeBadRequest, "request body too large"))
				return
			}
		}
	}
}
