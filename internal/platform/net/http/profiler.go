package http

import (
	stdhttp "net/http"
	"strings"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler serves pprof at prefix/pprof when enabled (CORE_API_PROFILER).
// chi's profiler expects to sit at the root, so the prefix is stripped first.
// An empty prefix means /debug
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		prefix = "/debug"
	}
	h := stdhttp.StripPrefix(prefix, mw.Profiler()).ServeHTTP
	r.Get(prefix, h)
	r.Get(prefix+"/*", h)
}
