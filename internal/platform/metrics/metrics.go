// Package metrics holds the prometheus collectors for spam checks and the HTTP surface.
// Every method is safe on a nil *Metrics so callers without metrics (the CLI, tests)
// can pass nil instead of branching
package metrics

import (
	"net/http"
	"strconv"
	"time"

	phttp "spamguard/internal/platform/net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name
const Namespace = "spamguard"

// Check outcomes used as the outcome label
const (
	OutcomeSpam    = "spam"
	OutcomeHam     = "ham"
	OutcomeInvalid = "invalid"
)

// Metrics owns a private registry so tests and multiple servers never collide
type Metrics struct {
	reg *prometheus.Registry

	ChecksTotal    *prometheus.CounterVec
	CheckScore     *prometheus.HistogramVec
	CheckDuration  *prometheus.HistogramVec
	RuleTriggers   *prometheus.CounterVec
	BatchSize      prometheus.Histogram
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	RulePackLoaded *prometheus.GaugeVec
}

// New creates and registers all collectors, plus the go and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	m := &Metrics{reg: reg}
	m.initCheckMetrics(factory)
	m.initHTTPMetrics(factory)
	return m
}

func (m *Metrics) initCheckMetrics(factory promauto.Factory) {
	m.ChecksTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "checks_total",
		Help:      "Spam checks by kind (question, answer) and outcome (spam, ham, invalid)",
	}, []string{"kind", "outcome"})

	// scores are sums of small integer weights; linear buckets around the default threshold
	m.CheckScore = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "check_score",
		Help:      "Spam score per check",
		Buckets:   prometheus.LinearBuckets(0, 10, 13),
	}, []string{"kind"})

	m.CheckDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "check_duration_seconds",
		Help:      "Time to score one piece of content",
		Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	}, []string{"kind"})

	m.RuleTriggers = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rule_triggers_total",
		Help:      "Rule firings by rule name",
	}, []string{"rule"})

	m.BatchSize = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "batch_size",
		Help:      "Items per batch check request",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
	})

	m.RulePackLoaded = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "rule_pack_info",
		Help:      "Always 1; labels carry the loaded rule pack name, version and threshold",
	}, []string{"name", "version", "threshold"})
}

func (m *Metrics) initHTTPMetrics(factory promauto.Factory) {
	m.HTTPRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route pattern and status",
	}, []string{"method", "route", "status"})

	m.HTTPDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
}

// Registry exposes the private registry (tests gather from it)
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// ObserveCheck records one scored check. rules are the names of the rules that fired
func (m *Metrics) ObserveCheck(kind string, spam bool, score int, elapsed time.Duration, rules []string) {
	if m == nil {
		return
	}
	outcome := OutcomeHam
	if spam {
		outcome = OutcomeSpam
	}
	m.ChecksTotal.WithLabelValues(kind, outcome).Inc()
	m.CheckScore.WithLabelValues(kind).Observe(float64(score))
	m.CheckDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	for _, r := range rules {
		m.RuleTriggers.WithLabelValues(r).Inc()
	}
}

// ObserveInvalid records a check rejected before scoring
func (m *Metrics) ObserveInvalid(kind string) {
	if m == nil {
		return
	}
	m.ChecksTotal.WithLabelValues(kind, OutcomeInvalid).Inc()
}

// ObserveBatch records the size of a batch request
func (m *Metrics) ObserveBatch(n int) {
	if m == nil {
		return
	}
	m.BatchSize.Observe(float64(n))
}

// SetRulePack publishes the loaded rule pack identity
func (m *Metrics) SetRulePack(name string, version, threshold int) {
	if m == nil {
		return
	}
	m.RulePackLoaded.Reset()
	m.RulePackLoaded.WithLabelValues(name, strconv.Itoa(version), strconv.Itoa(threshold)).Set(1)
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware counts requests and latency labelled by the chi route pattern.
// Unmatched paths share the "unmatched" label to keep cardinality bounded
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(sw, r)

		route := phttp.RoutePattern(r)
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
		m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
