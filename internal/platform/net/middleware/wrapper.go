// Package middleware adapts chi middleware for the API stacks so modules never import chi
package middleware

import (
	"net/http"
	"time"

	pstrings "spamguard/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// RequestID reuses an inbound X-Request-ID or mints one; the envelope echoes it as request_id
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// RealIP trusts X-Real-IP / X-Forwarded-For for RemoteAddr; only run it behind a proxy
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// Timeout cancels the request context after d (CORE_API_REQUEST_TIMEOUT)
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// NoCache marks every response uncacheable
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// Compress gzips or deflates responses at level (flate.BestSpeed in the common stack)
func Compress(level int) func(http.Handler) http.Handler {
	c := chimw.NewCompressor(level)
	return func(next http.Handler) http.Handler { return c.Handler(next) }
}

// Heartbeat answers GET path with 200 before routing, for /healthz
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS lets a forum frontend call the check endpoint before submit.
// Unset lists default to what that call needs
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{"GET", "POST", "OPTIONS"}),
		AllowedHeaders: pstrings.IfEmpty(
			o.AllowedHeaders,
			[]string{
				"Accept",
				"Content-Type",
				"X-Request-ID",
			},
		),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, []string{"X-Request-ID"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
