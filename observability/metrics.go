package observability

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	StoreOpDuration *prometheus.HistogramVec
	StoreErrors     *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskapi",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "taskapi",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskapi",
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method", "route"},
		),
		StoreOpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "taskapi",
				Subsystem: "store",
				Name:      "op_duration_seconds",
				Help:      "Document store operation latency by logical op.",
				Buckets:   []float64{0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.35, 0.5, 1, 2, 5},
			},
			[]string{"op", "status"},
		),
		StoreErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskapi",
				Subsystem: "store",
				Name:      "errors_total",
				Help:      "Document store errors by logical op and class.",
			},
			[]string{"op", "class"},
		),
	}
	reg.MustRegister(m.RequestsTotal, m.RequestsDuration, m.InFlight, m.StoreOpDuration, m.StoreErrors)

	return m
}

func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		method := c.Request.Method
		m.InFlight.WithLabelValues(method, route).Inc()
		defer m.InFlight.WithLabelValues(method, route).Dec()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		secs := time.Since(start).Seconds()

		m.RequestsTotal.WithLabelValues(method, route, status).Inc()
		m.RequestsDuration.WithLabelValues(method, route, status).Observe(secs)
	}
}

// ObserveStore times fn under the given logical op. A nil receiver just runs fn.
func (m *Metrics) ObserveStore(op string, fn func() error) error {
	if m == nil {
		return fn()
	}

	start := time.Now()
	err := fn()

	status := "ok"
	if err != nil {
		status = "error"
		m.StoreErrors.WithLabelValues(op, ClassifyStoreErr(err)).Inc()
	}
	m.StoreOpDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
	return err
}

func ClassifyStoreErr(err error) string {
	switch {
	case mongo.IsDuplicateKeyError(err):
		return "duplicate_key"
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case mongo.IsNetworkError(err):
		return "network"
	default:
		return "unknown"
	}
}
