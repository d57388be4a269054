// Package api provides the HTTP API for the application
package api

import (
	"spamguard/internal/core/detector"
	"spamguard/internal/platform/config"
	"spamguard/internal/platform/logger"
	"spamguard/internal/platform/metrics"
	phttp "spamguard/internal/platform/net/http"

	"spamguard/internal/modkit"
	"spamguard/internal/modkit/httpkit"
	"spamguard/internal/modkit/module"
	"spamguard/internal/modkit/swaggerkit"

	metamod "spamguard/internal/services/api/meta/module"
	spammod "spamguard/internal/services/api/spamcheck/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf // CORE_API_ view
	Spam           config.Conf // CORE_SPAM_ parent view; zero value reads the process env
	Detector       *detector.Detector
	Metrics        *metrics.Metrics
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Mount mounts the API service onto the given router. r must not have routes yet
func Mount(r phttp.Router, opt Options) {
	// root stack first; chi rejects Use after routes
	stack := httpkit.StackFromConfig(opt.Config, opt.Metrics)
	r.Use(httpkit.RootStack(stack)...)
	r.NotFound(phttp.NotFound)
	r.MethodNotAllowed(phttp.MethodNotAllowed)

	// shared deps for modules
	deps := modkit.Deps{
		Log:      *logger.Named("api"),
		Cfg:      opt.Spam,
		Detector: opt.Detector,
		Metrics:  opt.Metrics,
	}
	det := deps.DetectorOrDefault()
	opt.Metrics.SetRulePack(det.Pack().Name, det.Pack().Version, det.Threshold())

	mods := []module.Module{
		metamod.New(deps),
		spammod.New(deps),
	}

	// Swagger + profiler + metrics sit outside the versioned scope
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics && opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Handler())
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(stack), func(api httpkit.Router) {
		for _, m := range mods {
			// mount module routes under its Prefix()
			m.MountRoutes(api)
			deps.Log.Debug().Str("module", m.Name()).Msg("module mounted")
		}
	})
}
