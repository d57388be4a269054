package modkit

import (
	"net/http"

	"spamguard/internal/modkit/httpkit"
)

// Option adjusts one module build. Defaults come first, caller options after,
// so a caller can rename or re-prefix any module
type Option func(*buildCfg)

type buildCfg struct {
	name      string
	prefix    string
	mw        httpkit.Middlewares
	ports     any
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// WithName names the module in logs and panics
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

// WithPrefix sets the path the module mounts at inside /api/v1
func WithPrefix(prefix string) Option {
	return func(c *buildCfg) { c.prefix = prefix }
}

// WithMiddlewares appends middleware that wraps only this module's scope
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithPorts hands the module ports owned by another module
func WithPorts[T any](p T) Option {
	return func(c *buildCfg) { c.ports = p }
}

// WithSubrouter wraps the module scope before routes are registered
func WithSubrouter(fn func(httpkit.Router) httpkit.Router) Option {
	return func(c *buildCfg) { c.subrouter = fn }
}

// WithRegister adds extra routes after the module's own
func WithRegister(fn func(httpkit.Router)) Option {
	return func(c *buildCfg) { c.register = fn }
}
