package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/core/auth"
	resp "github.com/gblsmlo/lemind/internal/transport/http/response"
)

const KeyClaims = "claims"

// RevocationChecker tells signed-out tokens apart.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthJWT authenticates the bearer token and puts the auth.Session on the
// request context. requireRole is optional.
func AuthJWT(j *auth.JWTer, revoked RevocationChecker, requireRole string, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Abort(c, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.Abort(c, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if revoked != nil {
			gone, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// fail closed: a broken cache must not resurrect signed-out tokens
				l.Error("revocation check", zap.Error(err))
				resp.Abort(c, resp.Error(resp.CodeServerError, ""))
				return
			}
			if gone {
				resp.Abort(c, resp.Error(resp.CodeUnauthorized, "token revoked"))
				return
			}
		}
		if requireRole != "" && claims.Role != requireRole {
			resp.Abort(c, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(KeyClaims, claims)
		ctx := auth.WithSession(c.Request.Context(), auth.Session{
			UserID:  claims.UID,
			Role:    claims.Role,
			TokenID: claims.ID,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by AuthJWT.
func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(KeyClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}
