package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	phttp "spamguard/internal/platform/net/http"
	kit "spamguard/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveCheck(t *testing.T) {
	m := New()
	m.ObserveCheck("question", true, 65, time.Millisecond, []string{"spam_keyword", "excessive_urls"})
	m.ObserveCheck("question", false, 10, time.Millisecond, []string{"excessive_capitalization"})
	m.ObserveCheck("answer", false, 0, time.Millisecond, nil)
	m.ObserveInvalid("question")

	cases := []struct {
		kind, outcome string
		want          float64
	}{
		{"question", OutcomeSpam, 1},
		{"question", OutcomeHam, 1},
		{"answer", OutcomeHam, 1},
		{"answer", OutcomeSpam, 0},
		{"question", OutcomeInvalid, 1},
	}
	for _, c := range cases {
		if got := testutil.ToFloat64(m.ChecksTotal.WithLabelValues(c.kind, c.outcome)); got != c.want {
			t.Fatalf("checks_total{%s,%s} = %v, want %v", c.kind, c.outcome, got, c.want)
		}
	}
	if got := testutil.ToFloat64(m.RuleTriggers.WithLabelValues("spam_keyword")); got != 1 {
		t.Fatalf("rule_triggers_total{spam_keyword} = %v", got)
	}
	if got := testutil.CollectAndCount(m.CheckScore); got != 2 {
		t.Fatalf("check_score series = %d, want 2", got)
	}
}

func TestSetRulePackReplacesSeries(t *testing.T) {
	m := New()
	m.SetRulePack("forum-default", 1, 50)
	m.SetRulePack("strict", 2, 40)

	if got := testutil.CollectAndCount(m.RulePackLoaded); got != 1 {
		t.Fatalf("rule_pack_info series = %d, want 1", got)
	}
	if got := testutil.ToFloat64(m.RulePackLoaded.WithLabelValues("strict", "2", "40")); got != 1 {
		t.Fatalf("rule_pack_info = %v", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()

	r := phttp.AdaptChi(chi.NewRouter())
	r.Use(m.Middleware)
	r.Route("/api/v1/spam-detection", func(sr phttp.Router) {
		sr.Post("/batch", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadRequest) })
	})
	r.Handle("/metrics", m.Handler())

	for i := 0; i < 2; i++ {
		r.Mux().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/v1/spam-detection/batch", nil))
	}
	r.Mux().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nowhere", nil))

	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/api/v1/spam-detection/batch", "400")); got != 2 {
		t.Fatalf("http_requests_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Fatalf("unmatched = %v, want 1", got)
	}

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	kit.MustContain(t, string(body), "spamguard_http_requests_total")
	kit.MustContain(t, string(body), "go_goroutines")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	kit.MustNotPanic(t, func() {
		m.ObserveCheck("question", true, 80, time.Millisecond, []string{"spam_keyword"})
		m.ObserveInvalid("answer")
		m.ObserveBatch(3)
		m.SetRulePack("x", 1, 50)
	})
	if m.Registry() != nil {
		t.Fatalf("nil registry expected")
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, "ok") })
	rec := httptest.NewRecorder()
	m.Middleware(next).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if strings.TrimSpace(rec.Body.String()) != "ok" {
		t.Fatalf("nil middleware should pass through")
	}
	rec = httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("nil handler code %d", rec.Code)
	}
}
