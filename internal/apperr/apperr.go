// Package apperr defines the error taxonomy every mutating operation
// propagates. Handlers map a Kind to exactly one HTTP status; internal
// detail never reaches the response body.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind string

const (
	KindValidation Kind = "validation" // missing/malformed input
	KindAuth       Kind = "auth"       // missing or invalid credentials/token
	KindAuthz      Kind = "authz"      // authenticated but insufficient role/ownership
	KindNotFound   Kind = "not_found"  // referenced entity absent
	KindConflict   Kind = "conflict"   // uniqueness violation
	KindStorage    Kind = "storage"    // underlying transactional failure
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func Auth(msg string) *Error       { return &Error{Kind: KindAuth, Message: msg} }
func Authz(msg string) *Error      { return &Error{Kind: KindAuthz, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }

// Storage wraps an unexpected database error. The wrapped cause is kept
// for logging but is never serialized to the client.
func Storage(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Message: msg, Err: err}
}

// KindOf extracts the taxonomy kind from err, defaulting to storage for
// anything that is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// Status maps a taxonomy kind to its HTTP status code.
func Status(k Kind) int {
	switch k {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindAuth:
		return fiber.StatusUnauthorized
	case KindAuthz:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Message returns the client-visible message for err. Storage errors are
// collapsed to a generic message so internals never leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindStorage {
		return e.Message
	}
	return "Internal server error"
}
