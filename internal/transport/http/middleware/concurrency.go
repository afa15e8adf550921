package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/semaphore"

	resp "github.com/gblsmlo/lemind/internal/transport/http/response"
)

var inFlight = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "crm_http_in_flight",
	Help: "Requests holding a concurrency slot",
})

func init() { prometheus.MustRegister(inFlight) }

// ConcurrencyLimit caps in-flight requests so the store pool is not swamped.
// Waiting requests give up with their context.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if !sem.TryAcquire(1) {
			if err := sem.Acquire(c.Request.Context(), 1); err != nil {
				resp.Abort(c, resp.Error(resp.CodeServerError, "server busy"))
				return
			}
		}
		inFlight.Inc()
		defer func() {
			inFlight.Dec()
			sem.Release(1)
		}()
		c.Next()
	}
}
