package mediseek

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Normalized failure messages used when building {success:false} envelopes.
const (
	// CancelledMessage reports a request superseded underneath the caller.
	CancelledMessage = "request was cancelled"

	// UnreachableMessage reports that no response arrived at all.
	UnreachableMessage = "cannot reach server"

	// GenericNetworkMessage is the last-resort failure message.
	GenericNetworkMessage = "network error"
)

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrRequestRequired     = errors.New("request body is required")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrNoRefreshToken      = errors.New("no refresh token available")
	ErrEmptyResponseBody   = errors.New("empty response body")
)

// FieldError is one violated constraint discovered during validation.
type FieldError struct {
	Path    string `json:"path"    yaml:"path"`
	Message string `json:"message" yaml:"message"`
}

// ValidationError reports every violated field of a payload. It is returned
// for outbound bodies before any network I/O and for inbound payloads that
// break the server contract; unlike transport failures it is surfaced as a Go
// error, never folded into an envelope.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Path, f.Message))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// FieldMessage returns the message recorded for path, or "" when the field
// passed validation.
func (e *ValidationError) FieldMessage(path string) string {
	for _, f := range e.Fields {
		if f.Path == path {
			return f.Message
		}
	}

	return ""
}

// NewValidationError builds a ValidationError from (path, message) pairs
// collected into a map, sorted by path for deterministic output.
func NewValidationError(fields map[string]string) *ValidationError {
	paths := make([]string, 0, len(fields))
	for path := range fields {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	verr := &ValidationError{}
	for _, path := range paths {
		verr.Fields = append(verr.Fields, FieldError{Path: path, Message: fields[path]})
	}

	return verr
}

// CancelledError reports a request that was superseded by a newer request
// under the same identifier (last-writer-wins).
type CancelledError struct {
	Identifier string
}

// Error implements the error interface.
func (e *CancelledError) Error() string {
	if e.Identifier == "" {
		return CancelledMessage
	}

	return fmt.Sprintf("%s (%s)", CancelledMessage, e.Identifier)
}

// StatusError reports a server response with a non-2xx status. Message holds
// the server body's message when one was present.
type StatusError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("HTTP %d error", e.StatusCode)
}

// NetworkError reports a request that was sent but produced no response
// (timeout or connectivity loss), wrapping the underlying transport error.
type NetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return UnreachableMessage
}

// Unwrap exposes the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsValidation checks whether err carries field-level validation detail.
func IsValidation(err error) bool {
	verr := &ValidationError{}

	return errors.As(err, &verr)
}

// IsCancelled checks whether err is a superseded-request cancellation.
func IsCancelled(err error) bool {
	cerr := &CancelledError{}

	return errors.As(err, &cerr)
}

// IsUnauthorized checks whether err is a 401 response.
func IsUnauthorized(err error) bool {
	serr := &StatusError{}
	if errors.As(err, &serr) {
		return serr.StatusCode == http.StatusUnauthorized
	}

	return false
}

// IsNotFound checks whether err is a 404 response.
func IsNotFound(err error) bool {
	serr := &StatusError{}
	if errors.As(err, &serr) {
		return serr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsNetwork checks whether err means no response was received.
func IsNetwork(err error) bool {
	nerr := &NetworkError{}

	return errors.As(err, &nerr)
}

// FailureMessage maps a transport error to the human-readable string that
// populates Envelope.Error, applying the normalization precedence:
// cancellation, then server status, then unreachable server, then the
// underlying message with a generic fallback.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}

	cerr := &CancelledError{}
	if errors.As(err, &cerr) {
		return CancelledMessage
	}

	serr := &StatusError{}
	if errors.As(err, &serr) {
		return serr.Error()
	}

	nerr := &NetworkError{}
	if errors.As(err, &nerr) {
		return UnreachableMessage
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return GenericNetworkMessage
}

// Failure builds a normalized {success:false} envelope from a transport error.
func Failure[T any](err error) *Envelope[T] {
	return &Envelope[T]{Success: false, Error: FailureMessage(err)}
}
