package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"spamguard/internal/platform/config"
	"spamguard/internal/platform/metrics"
	"spamguard/internal/platform/net/middleware"
)

// StackOptions configures the root and per-API middleware stacks
type StackOptions struct {
	// CORSOrigins empty allows any origin
	CORSOrigins []string
	Timeout     time.Duration
	Slow        time.Duration
	Metrics     *metrics.Metrics
}

// StackFromConfig reads CORS_ORIGINS, REQUEST_TIMEOUT and SLOW_REQUEST from a CORE_API_ view
func StackFromConfig(cfg config.Conf, m *metrics.Metrics) StackOptions {
	return StackOptions{
		CORSOrigins: cfg.MayCSV("CORS_ORIGINS", nil),
		Timeout:     cfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		Slow:        cfg.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
		Metrics:     m,
	}
}

// RootStack runs for every request, docs and /metrics included.
// Metrics and the access log sit outside RecoverJSON so panics are still counted
func RootStack(o StackOptions) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RealIP(),
		middleware.RequestID(),
		middleware.RequestContext,
		o.Metrics.Middleware,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),
		middleware.RecoverJSON,
		middleware.Heartbeat("/healthz"),
	}
}

// CommonStack returns the baseline middleware for a versioned API scope
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins, MaxAge: 300}),
		middleware.NoCache(),
		middleware.Compress(flate.BestSpeed),
		middleware.Timeout(timeout),
	}
}
