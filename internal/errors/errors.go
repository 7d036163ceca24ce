// Package errors defines the platform error taxonomy. Every layer returns one
// of these kinds unchanged to the presentation boundary, which maps kinds to
// HTTP status codes mechanically.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a platform error.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindRateLimit     Kind = "rate_limit"
	KindPersistence   Kind = "persistence"
	KindProvider      Kind = "provider"
	KindAuthorization Kind = "authorization"
)

// FieldIssue describes a single invalid field.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the structured error carried through the use-case layer.
type Error struct {
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Issues  []FieldIssue `json:"issues,omitempty"`
	Err     error        `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the error kind to a response status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindRateLimit:
		return http.StatusTooManyRequests
	case KindAuthorization:
		return http.StatusUnauthorized
	case KindProvider:
		return http.StatusBadGateway
	case KindPersistence:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Validation builds a validation error with optional field issues.
func Validation(message string, issues ...FieldIssue) *Error {
	return &Error{Kind: KindValidation, Message: message, Issues: issues}
}

// RateLimited reports an exhausted quota for a key.
func RateLimited(key string) *Error {
	return &Error{Kind: KindRateLimit, Message: fmt.Sprintf("rate limit exceeded for %s", key)}
}

// Persistence wraps a backing-store failure.
func Persistence(err error) *Error {
	return &Error{Kind: KindPersistence, Message: "persistence failure", Err: err}
}

// Provider wraps a capability provider failure.
func Provider(name string, err error) *Error {
	return &Error{Kind: KindProvider, Message: fmt.Sprintf("provider %s failed", name), Err: err}
}

// Authorization reports missing or invalid actor context.
func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// KindOf returns the kind of err, or the empty kind for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool { return KindOf(err) == kind }

// HTTPStatus maps any error to a status code; foreign errors map to 500.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return http.StatusInternalServerError
}
