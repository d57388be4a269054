package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "spamguard/internal/platform/errors"
	lumnet "spamguard/internal/platform/net"
	phttp "spamguard/internal/platform/net/http"
)

// helper to build a request with a request_id in context
func reqWithReqID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(lumnet.WithRequest(req.Context(), rid))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v (%q)", err, rec.Body.String())
	}
	return env
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.JSON(rec, http.StatusTeapot, map[string]any{"k": "v"})
	if rec.Code != http.StatusTeapot {
		t.Fatalf("JSON status: expected 418, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content-type %q", ct)
	}
}

func TestHandle_OKAndNoContent(t *testing.T) {
	h := phttp.Handle(func(r *http.Request) phttp.Response {
		return phttp.OK(map[string]any{"x": 1})
	})
	rec := httptest.NewRecorder()
	h(rec, reqWithReqID("GET", "/ok", "rid-4"))
	if rec.Code != http.StatusOK {
		t.Fatalf("handle OK code: %d", rec.Code)
	}
	env := decode(t, rec)
	if env.StatusCode != 200 || env.Status != "OK" || env.RequestID != "rid-4" || env.Data == nil {
		t.Fatalf("bad envelope: %+v", env)
	}

	hn := phttp.Handle(func(r *http.Request) phttp.Response { return phttp.NoContent() })
	recN := httptest.NewRecorder()
	hn(recN, reqWithReqID("DELETE", "/no", "rid-6"))
	if recN.Code != http.StatusNoContent || recN.Body.Len() != 0 {
		t.Fatalf("handle NoContent code=%d body=%q", recN.Code, recN.Body.String())
	}

	// zero status defaults to 200
	hz := phttp.Handle(func(r *http.Request) phttp.Response { return phttp.Response{Body: "x"} })
	recZ := httptest.NewRecorder()
	hz(recZ, reqWithReqID("GET", "/z", "rid-z"))
	if recZ.Code != http.StatusOK {
		t.Fatalf("zero status code: %d", recZ.Code)
	}
}

func TestHandle_ErrorAndHeaders(t *testing.T) {
	hErr := phttp.Handle(func(r *http.Request) phttp.Response {
		return phttp.Error(perr.Validationf("title", "title is required for question type"))
	})
	rec := httptest.NewRecorder()
	hErr(rec, reqWithReqID("POST", "/err", "rid-7"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("handle error code: %d", rec.Code)
	}
	env := decode(t, rec)
	if env.Code != perr.ErrorCodeValidation || env.Field != "title" ||
		env.Error != "title is required for question type" || env.RequestID != "rid-7" || env.Data != nil {
		t.Fatalf("bad error envelope: %+v", env)
	}

	hHdr := phttp.Handle(func(r *http.Request) phttp.Response {
		resp := phttp.OK("hello")
		resp.Header = http.Header{}
		resp.Header.Set("X-Thing", "yup")
		return resp
	})
	rec2 := httptest.NewRecorder()
	hHdr(rec2, reqWithReqID("GET", "/hdr", "rid-8"))
	if got := rec2.Header().Get("X-Thing"); got != "yup" {
		t.Fatalf("expected header override, got %q", got)
	}

	// foreign errors map to unknown 500
	hGen := phttp.Handle(func(r *http.Request) phttp.Response {
		return phttp.Error(errors.New("boom"))
	})
	rec3 := httptest.NewRecorder()
	hGen(rec3, reqWithReqID("GET", "/gen", "rid-9"))
	if rec3.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for generic error, got %d", rec3.Code)
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.NotFound(rec, reqWithReqID("GET", "/nope", "rid-nf"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("not found code %d", rec.Code)
	}
	if env := decode(t, rec); env.Code != perr.ErrorCodeNotFound || env.RequestID != "rid-nf" {
		t.Fatalf("bad not found envelope: %+v", env)
	}

	rec2 := httptest.NewRecorder()
	phttp.MethodNotAllowed(rec2, reqWithReqID("PUT", "/x", "rid-mna"))
	if rec2.Code != http.StatusMethodNotAllowed {
		t.Fatalf("method not allowed code %d", rec2.Code)
	}
	if env := decode(t, rec2); env.StatusCode != http.StatusMethodNotAllowed || env.Error == "" {
		t.Fatalf("bad 405 envelope: %+v", env)
	}
}
