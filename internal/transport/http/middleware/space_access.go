package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
	resp "github.com/gblsmlo/lemind/internal/transport/http/response"
)

const ParamSpaceID = "spaceId"

type SpaceResolver interface {
	Resolve(ctx context.Context, userID, spaceID string) result.Result[*domain.Member]
}

// SpaceAccess binds the request to the :spaceId path parameter once the
// session user is known to be a member. Runs after AuthJWT.
func SpaceAccess(r SpaceResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := auth.SessionFrom(c.Request.Context())
		spaceID := c.Param(ParamSpaceID)

		res := r.Resolve(c.Request.Context(), sess.UserID, spaceID)
		if res.IsFailure() {
			resp.Abort(c, resp.Of(res))
			return
		}
		sess.SpaceID = spaceID
		sess.MemberRole = res.Data().Role
		c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), sess))
		c.Next()
	}
}
