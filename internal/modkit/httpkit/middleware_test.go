package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spamguard/internal/platform/config"
	"spamguard/internal/platform/metrics"
	phttp "spamguard/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestStackFromConfig(t *testing.T) {
	t.Setenv("TEST_STACK_CORS_ORIGINS", "https://forum.example, https://admin.example")
	t.Setenv("TEST_STACK_REQUEST_TIMEOUT", "5s")

	o := StackFromConfig(config.New().Prefix("TEST_STACK_"), nil)
	if len(o.CORSOrigins) != 2 || o.CORSOrigins[1] != "https://admin.example" {
		t.Fatalf("origins = %v", o.CORSOrigins)
	}
	if o.Timeout != 5*time.Second || o.Slow != 500*time.Millisecond {
		t.Fatalf("timeouts = %v/%v", o.Timeout, o.Slow)
	}
}

func TestStacks_EndToEnd(t *testing.T) {
	m := metrics.New()
	o := StackOptions{CORSOrigins: []string{"https://forum.example"}, Metrics: m}

	r := phttp.AdaptChi(chi.NewRouter())
	r.Use(RootStack(o)...)
	MountAPIV1(r, CommonStack(o), func(api Router) {
		api.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
		Get(api, "/ok", func(*http.Request) (any, error) { return "ok", nil })
	})

	// heartbeat short circuits at the root
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz %d", rec.Code)
	}

	// panics become JSON 500s and are still counted
	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/boom", nil))
	if rec.Code != http.StatusInternalServerError || rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("boom => %d rid=%q", rec.Code, rec.Header().Get("X-Request-ID"))
	}
	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/v1/boom", "500")); got != 1 {
		t.Fatalf("panic not counted: %v", got)
	}

	// CORS preflight answered for an allowed origin
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/ok", nil)
	req.Header.Set("Origin", "https://forum.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://forum.example" {
		t.Fatalf("missing CORS allow origin, headers=%v", rec.Header())
	}

	// NoCache applied within the API scope
	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/ok", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("Cache-Control") == "" {
		t.Fatalf("ok => %d cache=%q", rec.Code, rec.Header().Get("Cache-Control"))
	}
}
