package ninox

import (
	"errors"
	"fmt"
)

// Error codes used by the client.
const (
	CodeConfiguration   = "configuration"     // Missing credential or name input
	CodeAuthentication  = "authentication"    // Backend rejected the token
	CodeNotFound        = "not_found"         // Team or database name did not resolve
	CodeSessionNotReady = "session_not_ready" // Operation before a successful Auth
	CodeTransport       = "transport"         // Non-success status or network failure
)

// Resource names carried by not-found errors.
const (
	ResourceTeam     = "team"
	ResourceDatabase = "database"
)

// Sentinel errors for use with errors.Is.
var (
	ErrConfiguration   = &Error{Code: CodeConfiguration, Message: "invalid configuration"}
	ErrAuthentication  = &Error{Code: CodeAuthentication, Message: "invalid auth key"}
	ErrNotFound        = &Error{Code: CodeNotFound, Message: "not found"}
	ErrSessionNotReady = &Error{Code: CodeSessionNotReady, Message: "database and team are required, call Auth first"}
	ErrTransport       = &Error{Code: CodeTransport, Message: "request failed"}
)

// Error represents a Ninox client error.
type Error struct {
	Code       string // One of the Code constants
	Message    string // Human-readable message
	Resource   string // "team" or "database" for CodeNotFound
	StatusCode int    // HTTP status for CodeTransport, 0 if no response
	Body       []byte // Backend response body, when available
	Err        error  // Underlying cause
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("ninox [%s]: %s", e.Code, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if len(e.Body) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, truncate(string(e.Body), 256))
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is implements errors.Is for error comparison.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsConfiguration checks if an error indicates missing configuration.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsAuthentication checks if an error indicates the auth key was rejected.
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsNotFound checks if an error indicates a team or database was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsSessionNotReady checks if an error indicates Auth has not completed.
func IsSessionNotReady(err error) bool {
	return errors.Is(err, ErrSessionNotReady)
}

// IsTransport checks if an error is a transport or status error.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

func configurationError(field string) error {
	return &Error{Code: CodeConfiguration, Message: field + " is required"}
}

func notFoundError(resource, name string) error {
	return &Error{
		Code:     CodeNotFound,
		Message:  fmt.Sprintf("%s %q not found", resource, name),
		Resource: resource,
	}
}

func statusError(status int, body []byte) error {
	return &Error{
		Code:       CodeTransport,
		Message:    "unexpected status",
		StatusCode: status,
		Body:       body,
	}
}

func transportError(err error) error {
	return &Error{Code: CodeTransport, Message: "request failed", Err: err}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
