package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
)

type MetricsBuilder struct {
	summaryVec *prometheus.SummaryVec
	counterVec *prometheus.CounterVec
}

// NewMetricsBuilder registers the HTTP collectors on reg, the same registry
// served at /metrics.
func NewMetricsBuilder(reg prometheus.Registerer) *MetricsBuilder {
	summaryVec := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace: "skillhire",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.005,
				0.99: 0.001,
			},
		},
		[]string{"method", "path", "status_code"},
	)

	counterVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "skillhire",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	if reg != nil {
		reg.MustRegister(summaryVec, counterVec)
	}

	return &MetricsBuilder{summaryVec: summaryVec, counterVec: counterVec}
}

func (b *MetricsBuilder) Build() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		method := c.Method()
		// route template keeps label cardinality bounded
		path := c.Route().Path
		if path == "" {
			path = "unmatched"
		}
		statusCode := strconv.Itoa(statusOf(c, err))

		b.summaryVec.WithLabelValues(method, path, statusCode).Observe(duration)
		b.counterVec.WithLabelValues(method, path, statusCode).Inc()

		return err
	}
}
