// Package apperr defines the error taxonomy exposed over HTTP and the
// middleware that turns it into responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicateIdentity
	KindInvalidCredentials
	KindUnauthorized
	KindNotAuthorized
	KindNotFound
	KindRouteNotFound
	KindTooManyRequests
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicateIdentity:
		return "duplicate_identity"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotAuthorized:
		return "not_authorized"
	case KindNotFound:
		return "not_found"
	case KindRouteNotFound:
		return "route_not_found"
	case KindTooManyRequests:
		return "too_many_requests"
	default:
		return "internal"
	}
}

// Status is the HTTP status for the kind. Missing goals and items answer
// 400, only unknown routes answer 404.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindDuplicateIdentity, KindInvalidCredentials, KindNotFound:
		return http.StatusBadRequest
	case KindUnauthorized, KindNotAuthorized:
		return http.StatusUnauthorized
	case KindRouteNotFound:
		return http.StatusNotFound
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error

	stack string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Stack returns the call stack captured when the error was created.
func (e *Error) Stack() string { return e.stack }

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err, stack: callers(4)}
}

func Validation(message string) *Error { return newError(KindValidation, message, nil) }

func DuplicateIdentity(message string) *Error {
	return newError(KindDuplicateIdentity, message, nil)
}

func InvalidCredentials(message string) *Error {
	return newError(KindInvalidCredentials, message, nil)
}

func Unauthorized(message string) *Error { return newError(KindUnauthorized, message, nil) }

func NotAuthorized(message string) *Error { return newError(KindNotAuthorized, message, nil) }

func NotFound(message string) *Error { return newError(KindNotFound, message, nil) }

func RouteNotFound(path string) *Error {
	return newError(KindRouteNotFound, fmt.Sprintf("Not Found - %s", path), nil)
}

func TooManyRequests(message string) *Error {
	return newError(KindTooManyRequests, message, nil)
}

// Internal wraps an unexpected failure. The message is what clients see
// outside production.
func Internal(message string, err error) *Error {
	return newError(KindInternal, message, err)
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func callers(skip int) string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var b strings.Builder
	for {
		f, more := frames.Next()
		if !strings.HasPrefix(f.Function, "runtime.") {
			fmt.Fprintf(&b, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		}
		if !more {
			break
		}
	}
	return b.String()
}
