package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/core/server"
	"github.com/gblsmlo/lemind/internal/domain"
	"github.com/gblsmlo/lemind/internal/transport/http/ez"
	mdw "github.com/gblsmlo/lemind/internal/transport/http/middleware"
)

// NewAdminEngine serves /admin/v1 to admin-role tokens only.
func NewAdminEngine(l *zap.Logger, j *auth.JWTer, revoked mdw.RevocationChecker, reg *Registry) *gin.Engine {
	r := server.NewRouter(l)
	r.Use(mdw.RequestID(), mdw.Metrics("admin"))

	r.GET("/health", health(nil))

	admin := r.Group("/admin/v1", mdw.AuthJWT(j, revoked, domain.UserRoleAdmin, l))
	reg.MountAllAdmin(ez.New(admin))
	return r
}
