// Package apierr gives every layer of the server one typed error shape,
// so the HTTP API (internal/httpapi) can render a consistent JSON error
// envelope without type-switching on ad-hoc error values. The teacher has
// no equivalent (hub.go reports failures as ad-hoc Message fields over the
// socket); this package is grounded in spec.md §7's explicit enumeration
// of error kinds instead, expressed the idiomatic Go way as a typed error
// implementing the standard error interface.
package apierr

import "fmt"

// Code is one of the error kinds spec.md §7 requires every operation to be
// able to report.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeNotFound     Code = "not_found"
	CodeUnprocessable Code = "unprocessable"
	CodeRateLimited  Code = "rate_limited"
	CodeForbidden    Code = "forbidden"
	CodeInternal     Code = "internal"
)

// HTTPStatus maps a Code to the status line the HTTP API should send.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeBadRequest:
		return 400
	case CodeForbidden:
		return 403
	case CodeNotFound:
		return 404
	case CodeUnprocessable:
		return 422
	case CodeRateLimited:
		return 429
	default:
		return 500
	}
}

// Error is a typed, user-facing error: a Code the transport layer maps to
// a status, and a Message safe to return to the caller.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds an *Error. It is a plain constructor, not a wrapper, since
// every apierr.Error is meant to be constructed at the point the failure
// is first recognized rather than derived from a lower-level error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func BadRequest(msg string) *Error    { return New(CodeBadRequest, msg) }
func NotFound(msg string) *Error      { return New(CodeNotFound, msg) }
func Unprocessable(msg string) *Error { return New(CodeUnprocessable, msg) }
func RateLimited(msg string) *Error   { return New(CodeRateLimited, msg) }
func Forbidden(msg string) *Error     { return New(CodeForbidden, msg) }
func Internal(msg string) *Error      { return New(CodeInternal, msg) }
