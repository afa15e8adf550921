package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/transport/http/ez"
	mdw "github.com/gblsmlo/lemind/internal/transport/http/middleware"
	resp "github.com/gblsmlo/lemind/internal/transport/http/response"
)

// Limits protect the store behind the API.
type Limits struct {
	RPS          float64
	Burst        int
	PerIPRPS     float64
	PerIPBurst   int
	MaxInFlight  int64
	MaxJSONBytes int64
	MaxBodyBytes int64 // multipart uploads
	Timeout      time.Duration
}

func (l Limits) withDefaults() Limits {
	if l.RPS <= 0 {
		l.RPS, l.Burst = 200, 400
	}
	if l.PerIPRPS <= 0 {
		l.PerIPRPS, l.PerIPBurst = 20, 40
	}
	if l.MaxInFlight <= 0 {
		l.MaxInFlight = 300
	}
	if l.MaxJSONBytes <= 0 {
		l.MaxJSONBytes = 1 << 20
	}
	if l.MaxBodyBytes <= 0 {
		l.MaxBodyBytes = 16 << 20
	}
	if l.Timeout <= 0 {
		l.Timeout = 10 * time.Second
	}
	return l
}

type APIDeps struct {
	Log      *zap.Logger
	JWT      *auth.JWTer
	Revoked  mdw.RevocationChecker
	Access   mdw.SpaceResolver
	Registry *Registry
	Limits   Limits

	// Health checks run on GET /health, e.g. store and cache pings.
	Health map[string]func(context.Context) error

	// FilesDir is served read-only under /files when set.
	FilesDir string
}

func NewAPIEngine(d APIDeps) *gin.Engine {
	lim := d.Limits.withDefaults()
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.SimpleRecovery(d.Log),
		mdw.Metrics("api"),
		mdw.AccessLog(d.Log),
		mdw.RateLimit(rate.Limit(lim.RPS), lim.Burst),
		mdw.RateLimitPerIP(rate.Limit(lim.PerIPRPS), lim.PerIPBurst),
		mdw.ConcurrencyLimit(lim.MaxInFlight),
		mdw.MaxBodyBytes(lim.MaxJSONBytes, lim.MaxBodyBytes),
		mdw.Timeout(lim.Timeout, d.Log),
	)

	r.GET("/health", health(d.Health))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if d.FilesDir != "" {
		r.Static("/files", d.FilesDir)
	}

	api := r.Group("/api/v1")
	authed := api.Group("", mdw.AuthJWT(d.JWT, d.Revoked, "", d.Log))
	space := authed.Group("/spaces/:"+mdw.ParamSpaceID, mdw.SpaceAccess(d.Access))

	d.Registry.MountAllAPI(ez.Groups{
		Public: ez.New(api),
		Authed: ez.New(authed),
		Space:  ez.New(space),
	})
	return r
}

func health(checks map[string]func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		status := map[string]string{}
		failed := false
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status[name] = err.Error()
				failed = true
				continue
			}
			status[name] = "ok"
		}
		if failed {
			out := resp.Error(resp.CodeServerError, "unhealthy")
			out.Data = status
			resp.JSON(c, out)
			return
		}
		resp.JSON(c, resp.OK(status))
	}
}
