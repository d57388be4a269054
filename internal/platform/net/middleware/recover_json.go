package middleware

import (
	stdjson "encoding/json"
	"errors"
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "spamguard/internal/platform/errors"
	"spamguard/internal/platform/logger"
	pnet "spamguard/internal/platform/net"
)

// RecoverJSON converts panics into a JSON 500 and logs stack with request id.
// http.ErrAbortHandler is re-raised so the server can drop the connection
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if err, ok := v.(error); ok && errors.Is(err, stdhttp.ErrAbortHandler) {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())

			// format stack like chi recover
			stack := strings.ReplaceAll(string(debug.Stack()), "\n", "\n\t")

			logger.C(r.Context()).Error().
				Interface("panic", v).
				Msgf("panic recovered\n%s", stack)

			// mirror id in response header
			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}

			status, body := pnet.Error(perr.PanicErrf("panic recovered"), reqID)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = stdjson.NewEncoder(w).Encode(body)
		}()
		next.ServeHTTP(w, r)
	})
}
