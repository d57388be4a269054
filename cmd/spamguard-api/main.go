// @title         spamguard API
// @version       1.0
// @description   Rule based spam scoring for forum questions and answers

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"spamguard/internal/modkit"
	"spamguard/internal/platform/config"
	"spamguard/internal/platform/logger"
	"spamguard/internal/platform/metrics"
	phttp "spamguard/internal/platform/net/http"

	"spamguard/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	spamCfg := root.Prefix("CORE_SPAM_")

	// bring up logging early
	l := logger.Get()

	// rule pack: embedded defaults, optionally overlaid from CORE_SPAM_RULES_FILE
	det, err := modkit.LoadDetector(spamCfg.MayFile("RULES_FILE"))
	if err != nil {
		l.Panic().Err(err).Msg("rule pack load failed")
	}
	l.Info().
		Str("pack", det.Pack().Name).
		Int("version", det.Pack().Version).
		Int("threshold", det.Threshold()).
		Msg("rule pack loaded")

	var m *metrics.Metrics
	if apiCfg.MayBool("METRICS", true) {
		m = metrics.New()
	}

	// http server (reads CORE_API_ADDR and timeouts)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Spam:           root,
			Detector:       det,
			Metrics:        m,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			EnableMetrics:  m != nil,
		},
	)

	// run until SIGINT/SIGTERM, then drain
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("http server stopped")
}
