package httpkit

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "spamguard/internal/platform/errors"
)

// run executes a Handler and returns status code and body
func run(h Handler, r *http.Request) (int, string) {
	rec := httptest.NewRecorder()
	h(rec, r)
	res := rec.Result()
	defer func() { _ = res.Body.Close() }()

	b, _ := io.ReadAll(res.Body)
	return rec.Code, string(b)
}

func TestHandle_PassThrough(t *testing.T) {
	h := Handle(func(_ *http.Request) Response {
		return OK("made")
	})
	code, body := run(h, httptest.NewRequest(http.MethodGet, "/", nil))
	if code != http.StatusOK || !strings.Contains(body, "made") {
		t.Fatalf("got %d %q", code, body)
	}

	hn := Handle(func(_ *http.Request) Response { return NoContent() })
	if code, body := run(hn, httptest.NewRequest(http.MethodGet, "/", nil)); code != http.StatusNoContent || body != "" {
		t.Fatalf("got %d %q", code, body)
	}
}

func TestCall(t *testing.T) {
	cases := []struct {
		name     string
		fn       func(*http.Request) (any, error)
		wantCode int
		wantBody string
	}{
		{
			name:     "plain value wrapped",
			fn:       func(*http.Request) (any, error) { return map[string]int{"threshold": 50}, nil },
			wantCode: http.StatusOK,
			wantBody: `"threshold":50`,
		},
		{
			name:     "response passthrough",
			fn:       func(*http.Request) (any, error) { return Response{Status: http.StatusAccepted, Body: "queued"}, nil },
			wantCode: http.StatusAccepted,
			wantBody: "queued",
		},
		{
			name:     "project error mapped",
			fn:       func(*http.Request) (any, error) { return nil, perr.Unavailablef("draining") },
			wantCode: http.StatusServiceUnavailable,
			wantBody: "draining",
		},
		{
			name:     "foreign error is 500",
			fn:       func(*http.Request) (any, error) { return nil, errors.New("nah") },
			wantCode: http.StatusInternalServerError,
			wantBody: "nah",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := run(Call(tc.fn), httptest.NewRequest(http.MethodGet, "/", nil))
			if code != tc.wantCode || !strings.Contains(body, tc.wantBody) {
				t.Fatalf("got %d %q", code, body)
			}
		})
	}

	if code, _ := run(Handle(func(*http.Request) Response { return Error(errors.New("x")) }), httptest.NewRequest("GET", "/", nil)); code != 500 {
		t.Fatalf("Error() code %d", code)
	}
}
