// Package http provides helpers for writing JSON responses with a consistent envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "spamguard/internal/platform/errors"
	lumnet "spamguard/internal/platform/net"
)

// Envelope is the standard response body for all endpoints
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is a functional response object for return-style handlers
type Response struct {
	Status int
	Body   any
	// optional headers if a handler wants to add any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}

	reqID := lumnet.RequestID(r.Context())

	// an error body decides its own status
	if err, ok := resp.Body.(error); ok && err != nil {
		writeError(w, reqID, err)
		return
	}

	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  reqID,
		Data:       resp.Body,
	})
}

func writeError(w stdhttp.ResponseWriter, reqID string, err error) {
	status, wr := lumnet.Error(err, reqID)
	JSON(w, status, Envelope{
		StatusCode: wr.StatusCode,
		Status:     wr.Status,
		Code:       wr.Code,
		Error:      wr.Error,
		Field:      wr.Field,
		RequestID:  wr.RequestID,
	})
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }

// NotFound writes the JSON envelope for unknown routes
func NotFound(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	writeError(w, lumnet.RequestID(r.Context()), perr.NotFoundf("no route for %s %s", r.Method, r.URL.Path))
}

// MethodNotAllowed writes the JSON envelope for a known route hit with the wrong method
func MethodNotAllowed(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	err := perr.InvalidArgf("method %s not allowed on %s", r.Method, r.URL.Path)
	reqID := lumnet.RequestID(r.Context())
	JSON(w, stdhttp.StatusMethodNotAllowed, Envelope{
		StatusCode: stdhttp.StatusMethodNotAllowed,
		Status:     stdhttp.StatusText(stdhttp.StatusMethodNotAllowed),
		Code:       perr.ErrorCodeInvalidArgument,
		Error:      err.Error(),
		RequestID:  reqID,
	})
}
