package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// NotConfiguredError indicates an operation that needs the remote backend
	NotConfiguredError struct {
		Operation string
	}
)

// Error implementations
func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }
func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("%s requires the remote backend", e.Operation)
}

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int      { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int    { return http.StatusBadRequest }
func (e *NotConfiguredError) StatusCode() int { return http.StatusNotImplemented }

// Is lets errors.Is match the typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool      { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool    { return target == ErrValidation }
func (e *NotConfiguredError) Is(target error) bool { return target == ErrNotConfigured }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("already exists")
	ErrValidation    = errors.New("validation failed")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotConfigured = errors.New("remote backend not configured")

	// ErrCorrupt marks a stored document that exists but cannot be decoded
	ErrCorrupt = errors.New("stored document is corrupt")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (post, video)
	ResourceID   string // Slug of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewSlugConflict builds the conflict returned when a content slug is taken.
func NewSlugConflict(contentType, slug string) *ConflictError {
	return &ConflictError{
		Message:      fmt.Sprintf("%s %q already exists", contentType, slug),
		ResourceType: contentType,
		ResourceID:   slug,
	}
}

// Backend names used in TransportError and save results.
const (
	BackendRemote = "remote"
	BackendLocal  = "local"
)

// TransportError wraps a failure of the underlying network or filesystem
// call. It is never retried by the stores.
type TransportError struct {
	Op         string // e.g. "put object", "load site config"
	Backend    string // BackendRemote or BackendLocal
	StatusCode int    // HTTP-equivalent status when the remote reported one, else 0
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (%s): status %d: %v", e.Op, e.Backend, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Op, e.Backend, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewTransportError wraps err unless it is nil or already a TransportError.
func NewTransportError(op, backend string, err error) error {
	if err == nil {
		return nil
	}
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}
	return &TransportError{Op: op, Backend: backend, Err: err}
}

// IsConflict reports whether err is a conflict of any kind.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
