package http_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spamguard/internal/platform/config"
	phttp "spamguard/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestNewServer_ConfigAndOptions(t *testing.T) {
	t.Setenv("TEST_SRV_ADDR", "127.0.0.1:0")

	applied := false
	s := phttp.NewServer(config.New().Prefix("TEST_SRV_"), func(m *chi.Mux) { applied = true })
	if !applied {
		t.Fatalf("option not applied")
	}
	if s.Addr() != "127.0.0.1:0" {
		t.Fatalf("addr = %q", s.Addr())
	}

	s.Router().Get("/ping", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("pong")) })
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/ping", nil))
	if rr.Code != 200 || rr.Body.String() != "pong" {
		t.Fatalf("GET /ping => %d %q", rr.Code, rr.Body.String())
	}
}

func TestNewServer_DefaultAddr(t *testing.T) {
	s := phttp.NewServer(config.New().Prefix("TEST_SRV_UNSET_"))
	if s.Addr() != ":4000" {
		t.Fatalf("default addr = %q", s.Addr())
	}
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := phttp.NewServer(config.New().Prefix("TEST_SRV_SERVE_"))
	s.Router().Get("/ping", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("pong")) })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	if err != nil {
		cancel()
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "pong" {
		t.Fatalf("body %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Serve did not return after cancel")
	}
}

func TestRun_ListenError(t *testing.T) {
	t.Setenv("TEST_SRV_BAD_ADDR", "256.0.0.1:bad")
	s := phttp.NewServer(config.New().Prefix("TEST_SRV_BAD_"))
	if err := s.Run(context.Background()); err == nil {
		t.Fatalf("expected listen error")
	}
}
