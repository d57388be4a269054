package httpkit

import "net/http"

// Middlewares is the chain a module or API version wraps its own scope with
type Middlewares = []func(http.Handler) http.Handler

// MountUnder gives a module its own scope at prefix (/spam-detection, /meta).
// mw wraps only that scope. An empty or "/" prefix mounts into a group that
// shares the parent's paths instead of opening a sub route
func MountUnder(r Router, prefix string, mw Middlewares, mount func(Router)) {
	if prefix == "" || prefix == "/" {
		r.Group(func(g Router) { scoped(g, mw, mount) })
		return
	}
	r.Route(prefix, func(sub Router) { scoped(sub, mw, mount) })
}

func scoped(r Router, mw Middlewares, mount func(Router)) {
	if len(mw) > 0 {
		r.Use(mw...)
	}
	mount(r)
}
