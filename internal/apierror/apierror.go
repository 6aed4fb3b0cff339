// Package apierror provides the error taxonomy used by the service layer and
// the standardized error response structures for the API. All errors returned
// to clients go through this package to ensure consistency and to prevent
// leaking internal details (stack traces, DB errors, etc.).
package apierror

import "errors"

// Kind classifies a service error so handlers can map it to an HTTP status
// without inspecting message strings.
type Kind int

const (
	// KindInternal is the fallback for unclassified errors.
	KindInternal Kind = iota
	// KindValidation marks malformed input, rejected before any mutation.
	KindValidation
	// KindConflict marks state conflicts: duplicate active plate,
	// double-settlement, double-finalization. The caller must re-fetch
	// state; conflicts are never retried automatically.
	KindConflict
	// KindNotFound marks tenant-scoped lookups that matched no record.
	// A cross-tenant lookup produces the same error as a missing record.
	KindNotFound
	// KindUnauthorized marks failed or missing authentication.
	KindUnauthorized
	// KindForbidden marks an authenticated caller lacking the required
	// role or an inactive tenant subscription.
	KindForbidden
)

// Error is the canonical error type returned by services.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Msg: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Msg: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Msg: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Msg: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Msg: msg} }

// KindOf extracts the Kind from any error, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// FieldErrors wraps multiple field-level validation errors.
type FieldErrors struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewFieldErrors(fields map[string]string) *FieldErrors {
	return &FieldErrors{Detail: "Error de validacion", Fields: fields}
}
