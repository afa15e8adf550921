package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	resp "github.com/gblsmlo/lemind/internal/transport/http/response"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_http_requests_total",
		Help: "HTTP requests by route and envelope code",
	}, []string{"surface", "route", "method", "code"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crm_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"surface", "route", "method"})
)

func init() { prometheus.MustRegister(httpRequests, httpDuration) }

// Metrics records one sample per request. Routes are labelled by template so
// /spaces/:spaceId/contacts/:id is one series for every tenant. The code
// label is the envelope code since the HTTP status is always 200.
func Metrics(surface string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		code := strconv.Itoa(resp.CodeFrom(c, c.Writer.Status()))
		httpRequests.WithLabelValues(surface, route, c.Request.Method, code).Inc()
		httpDuration.WithLabelValues(surface, route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
