// Package module wires spam checks into the API using modkit
package module

import (
	"net/http"

	modkit "spamguard/internal/modkit"
	"spamguard/internal/modkit/httpkit"
	"spamguard/internal/modkit/swaggerkit"
	str "spamguard/internal/platform/strings"

	"spamguard/internal/services/api/spamcheck/domain"
	shttp "spamguard/internal/services/api/spamcheck/http"
	ssvc "spamguard/internal/services/api/spamcheck/service"
)

// Module implements the spam check API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports Ports

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *ssvc.Svc
}

// Ports exposes the checker to other modules and to the CLI
type Ports struct {
	Checker domain.ServicePort
}

// New constructs the spam check module from deps and CORE_SPAM_* config
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return NewWith(deps, FromConfig(deps.Cfg), opts...)
}

// NewWith constructs the module with explicit options
func NewWith(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("spamcheck"),
		modkit.WithPrefix("/spam-detection"),
	}, opts...)...)

	svc := ssvc.New(deps.DetectorOrDefault(), deps.Metrics, ssvc.Options{
		MaxBatch:  o.MaxBatch,
		StripHTML: o.StripHTML,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
		ports:     Ports{Checker: svc},
	}

	swaggerkit.Register("spamcheck.batch_limit", batchLimit(o.MaxBatch))

	external := b.Register
	m.register = func(r httpkit.Router) {
		shttp.Register(r, m.svc, shttp.Options{BatchBody: o.BatchBody})
		if external != nil {
			external(r)
		}
	}
	return m
}

// batchLimit publishes the configured batch bound in the served spec
func batchLimit(n int) swaggerkit.SpecMutator {
	return func(spec map[string]any) {
		if n <= 0 {
			return
		}
		comps, _ := spec["components"].(map[string]any)
		schemas, _ := comps["schemas"].(map[string]any)
		br, _ := schemas["BatchRequest"].(map[string]any)
		props, _ := br["properties"].(map[string]any)
		if items, ok := props["items"].(map[string]any); ok {
			items["maxItems"] = n
		}
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.mws, func(rr httpkit.Router) {
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
