package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// DocsMetrics holds the collectors for documentation traffic.
type DocsMetrics struct {
	Registry        *prometheus.Registry
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	SpecFailures    prometheus.Counter
}

func NewDocsMetrics(logger zerolog.Logger) *DocsMetrics {
	m := &DocsMetrics{
		Registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docs_http_requests_total",
			Help: "Documentation requests by route and status.",
		}, []string{"route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "docs_http_request_duration_seconds",
			Help:    "Documentation request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		SpecFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "docs_spec_failures_total",
			Help: "Spec document requests answered with a server error.",
		}),
	}
	m.Registry.MustRegister(m.Requests, m.RequestDuration, m.SpecFailures)
	logger.Debug().Msg("docs metrics registered")
	return m
}

// Instrument records every request on the routes it wraps, labelled by the
// route pattern rather than the raw path. A 5xx on specRoute also counts as
// a spec failure.
func (m *DocsMetrics) Instrument(specRoute string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		if specRoute != "" && route == specRoute && status >= http.StatusInternalServerError {
			m.SpecFailures.Inc()
		}
	}
}

func (m *DocsMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
