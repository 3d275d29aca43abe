package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "miaoli_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	ledgerMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "miaoli_ledger_mutations_total",
			Help: "Ledger mutations by action and outcome.",
		},
		[]string{"action", "outcome"},
	)
)

// Middleware counts every request once the handler chain finished.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func Mutation(action string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	ledgerMutations.WithLabelValues(action, outcome).Inc()
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
