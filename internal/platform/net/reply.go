package net

import (
	"net/http"

	perr "spamguard/internal/platform/errors"
)

// Wire is the error envelope written by layers that cannot import the http package
// (middleware). It matches the http Envelope field for field
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
}

// Error builds an error envelope. A nil err yields a bare 200
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{
			StatusCode: http.StatusOK,
			Status:     http.StatusText(http.StatusOK),
			RequestID:  reqID,
		}
	}
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		Field:      w.Field,
		RequestID:  reqID,
	}
}
