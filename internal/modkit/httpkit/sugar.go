package httpkit

import (
	"net/http"

	phttp "spamguard/internal/platform/net/http"
	"spamguard/internal/platform/net/http/bind"
)

// BindOptions re-exports the body binding options
type BindOptions = bind.JSONOptions

// DefaultBindOptions returns the limits PostJSON applies
func DefaultBindOptions() BindOptions { return bind.DefaultJSONOptions() }

// PostJSON mounts a JSON handler under POST; the body is bound and validated first
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// PostJSONWith is PostJSON with explicit body limits
func PostJSONWith[T any](r Router, path string, opts BindOptions, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandlerWith(opts, h))
}

// Get registers a no-body handler and uses the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}
