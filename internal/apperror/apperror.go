// Package apperror defines the error kinds the API exposes to callers and
// their HTTP representation. Every failure leaving a service or handler is
// one of these kinds; anything else is reported as a generic internal error.
package apperror

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Kind uint8

const (
	KindInternal Kind = iota
	KindUnauthorized
	KindBadRequest
	KindForbidden
	KindNotFound
)

func (k Kind) prefix() string {
	switch k {
	case KindUnauthorized:
		return "Unauthorized"
	case KindBadRequest:
		return "Bad request"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "Not found"
	default:
		return "Internal server error"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindBadRequest:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a caller-safe error. Message must never carry library or storage
// details.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Kind.prefix() + ": " + e.Message
}

func Internal(msg string) *Error     { return &Error{Kind: KindInternal, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func BadRequest(msg string) *Error   { return &Error{Kind: KindBadRequest, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }

// From returns err as an *Error. Errors of any other type are folded into a
// generic internal error.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("Internal error")
}

// KindOf reports the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	return From(err).Kind
}

// Respond writes err as {"error": "..."} with the matching status code.
func Respond(c *gin.Context, err error) {
	appErr := From(err)
	c.JSON(appErr.Kind.Status(), gin.H{"error": appErr.Error()})
}

// Abort is Respond for middleware: the remaining handlers do not run.
func Abort(c *gin.Context, err error) {
	appErr := From(err)
	c.AbortWithStatusJSON(appErr.Kind.Status(), gin.H{"error": appErr.Error()})
}
