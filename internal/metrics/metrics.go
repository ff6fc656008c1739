// Package metrics exports parser, detection and HTTP counters to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/joshuapare/propkit/pkg/detect"
	"github.com/joshuapare/propkit/propstore"
)

const DefaultNamespace = "propkit"

// Collector implements propstore.Observer and detect.Observer.
type Collector struct {
	strategyAttempts    *prometheus.CounterVec
	strategySuccess     *prometheus.CounterVec
	propertiesExtracted *prometheus.CounterVec
	parseFailures       *prometheus.CounterVec
	detections          *prometheus.CounterVec
	tamperSignal        prometheus.Gauge

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var (
	_ propstore.Observer = (*Collector)(nil)
	_ detect.Observer    = (*Collector)(nil)
)

// New registers the collector's metrics with reg. A nil reg uses the
// default registry.
func New(reg prometheus.Registerer, namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Collector{
		strategyAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "strategy_attempts_total",
				Help:      "Parsing strategies started",
			},
			[]string{"strategy"},
		),
		strategySuccess: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "strategy_success_total",
				Help:      "Parses won by each strategy",
			},
			[]string{"strategy"},
		),
		propertiesExtracted: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "properties_extracted_total",
				Help:      "ro.* entries found by each strategy attempt",
			},
			[]string{"strategy"},
		),
		parseFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "parse_failures_total",
				Help:      "Parses that recovered nothing, by error kind",
			},
			[]string{"kind"},
		),
		detections: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "detections_total",
				Help:      "Detection check outcomes",
			},
			[]string{"check", "result"}, // detected, clean, error
		),
		tamperSignal: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "tamper_signal",
				Help:      "1 when the last verdict was compromised",
			},
		),
		httpRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latencies in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"method", "path"},
		),
	}
}

func (c *Collector) StrategyStarted(s propstore.Strategy) {
	c.strategyAttempts.WithLabelValues(s.String()).Inc()
}

func (c *Collector) StrategyFinished(s propstore.Strategy, found int) {
	c.propertiesExtracted.WithLabelValues(s.String()).Add(float64(found))
}

func (c *Collector) ParseFinished(s propstore.Strategy, err error) {
	if err == nil {
		c.strategySuccess.WithLabelValues(s.String()).Inc()
		return
	}
	kind := "unknown"
	if k, ok := propstore.KindOf(err); ok {
		kind = k.String()
	}
	c.parseFailures.WithLabelValues(kind).Inc()
}

func (c *Collector) CheckFinished(f detect.Finding) {
	result := "clean"
	switch {
	case f.Err != nil:
		result = "error"
	case f.Detected:
		result = "detected"
	}
	c.detections.WithLabelValues(f.Check, result).Inc()
}

// RecordVerdict sets the tamper gauge.
func (c *Collector) RecordVerdict(v detect.Verdict) {
	if v.Compromised {
		c.tamperSignal.Set(1)
	} else {
		c.tamperSignal.Set(0)
	}
}

// HTTPMiddleware records request counts and latencies by route template.
func (c *Collector) HTTPMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(ctx.Writer.Status())
		c.httpRequestsTotal.WithLabelValues(ctx.Request.Method, path, status).Inc()
		c.httpRequestDuration.WithLabelValues(ctx.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
