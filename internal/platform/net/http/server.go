package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"time"

	"spamguard/internal/platform/config"
	"spamguard/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// Server is a thin wrapper over chi + stdlib http.Server with graceful shutdown
type Server struct {
	addr            string
	mux             *chi.Mux
	srv             *stdhttp.Server
	shutdownTimeout time.Duration
}

// NewServer creates a server from a CORE_API_ style config view.
// opts receive the *chi.Mux so callers can adjust it before routes are mounted
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("ADDR", ":4000")
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr:            addr,
		mux:             m,
		shutdownTimeout: cfg.MayDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: cfg.MayDuration("READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       cfg.MayDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      cfg.MayDuration("WRITE_TIMEOUT", 45*time.Second),
			IdleTimeout:       cfg.MayDuration("IDLE_TIMEOUT", 60*time.Second),
		},
	}
}

// Router returns a Router facade over the internal chi mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Handler exposes the root handler (tests drive it with httptest)
func (s *Server) Handler() stdhttp.Handler { return s.mux }

// Addr returns the configured listening address
func (s *Server) Addr() string { return s.addr }

// Run listens on the configured address and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then drains in-flight requests
// for at most the shutdown timeout. A clean shutdown returns nil
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log := logger.Named("http")
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", ln.Addr().String()).Msg("http listening")
		if err := s.srv.Serve(ln); !errors.Is(err, stdhttp.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		log.Info().Dur("timeout", s.shutdownTimeout).Msg("http shutting down")
		return s.srv.Shutdown(sctx)
	})

	return g.Wait()
}
