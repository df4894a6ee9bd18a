// Package errors maps parser and handler failures onto the HTTP status
// codes the reactor sends back, grounded on server/protocol/errors.go's
// sentinel-error style and generalized to carry a status.Code and a
// JSON-marshalable body (response's default error representation).
package errors

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/bthrall/pistache/status"
)

// sentinels for parser/connection states that don't themselves carry a
// status code; callers translate them at the boundary (conn's feed/parse
// cycle, spec.md §4.4).
var (
	ErrIncomplete = errors.New("incomplete request")
	ErrClosed     = errors.New("connection closed")
)

// HTTPError is a failure with an HTTP status code attached, returned by
// the parser and by handler code, and serialized as the response body
// when no handler-supplied body exists.
type HTTPError struct {
	Code   status.Code
	Reason string
}

func (e *HTTPError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return status.Reason(e.Code)
}

// body is the wire shape of HTTPError's default JSON representation.
type body struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// MarshalJSON renders the default error body the response writes when a
// handler doesn't supply one of its own.
func (e *HTTPError) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(body{
		Error: e.Error(),
		Code:  int(e.Code),
	})
}

// BadRequest wraps a malformed-request-line or malformed-header failure
// from the parser (spec.md §4.2).
func BadRequest(reason string) *HTTPError {
	return &HTTPError{Code: status.BadRequest, Reason: reason}
}

// NotFound reports that no route matched the request (router package).
func NotFound(reason string) *HTTPError {
	return &HTTPError{Code: status.NotFound, Reason: reason}
}

// NotImplemented reports a request feature the parser recognizes but
// deliberately does not support (chunked transfer-encoding, spec.md §9).
func NotImplemented(reason string) *HTTPError {
	return &HTTPError{Code: status.NotImplemented, Reason: reason}
}

// RequestEntityTooLarge reports a request that exceeded the connection's
// MaxBuffer before it could be fully parsed (spec.md §4.3, §7).
func RequestEntityTooLarge(reason string) *HTTPError {
	return &HTTPError{Code: status.RequestEntityTooLarge, Reason: reason}
}

// InternalServerError wraps a panic or unexpected error surfacing from
// handler code (spec.md §4.4's exception-to-response conversion).
func InternalServerError(reason string) *HTTPError {
	return &HTTPError{Code: status.InternalServerError, Reason: reason}
}

// AsHTTPError unwraps err to an *HTTPError if one is present anywhere in
// its chain, for the conn package's catch-all handler-error conversion.
func AsHTTPError(err error) (*HTTPError, bool) {
	var h *HTTPError
	if errors.As(err, &h) {
		return h, true
	}
	return nil, false
}
