package tba

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/frc1418/go-tba/internal/paths"
)

var (
	// ErrInvalidArgument marks identifiers or options rejected before any request.
	ErrInvalidArgument = paths.ErrInvalidArgument

	// ErrNoEventScope is returned by trusted writes when no event key is configured.
	ErrNoEventScope = errors.New("no event key configured for trusted writes")

	// ErrNoTrustedCredentials is returned by trusted writes without an auth id and secret.
	ErrNoTrustedCredentials = errors.New("trusted auth id and secret are required")

	// ErrNotModified is matched by every *NotModifiedError.
	ErrNotModified = errors.New("not modified")

	// ErrAPI is matched by *APIErrorList and *StatusError.
	ErrAPI = errors.New("api error")
)

// NotModifiedError is returned for a 304 answer when FailOnNotModified was given.
type NotModifiedError struct {
	Path         string
	LastModified LastModified
}

func (e *NotModifiedError) Error() string {
	if e.LastModified.IsZero() {
		return fmt.Sprintf("%s not modified", e.Path)
	}
	return fmt.Sprintf("%s not modified since %s", e.Path, e.LastModified)
}

// Is reports whether target is ErrNotModified.
func (e *NotModifiedError) Is(target error) bool {
	return target == ErrNotModified
}

// APIError is one (kind, message) entry of an error payload.
type APIError struct {
	Kind    string
	Message string
}

// APIErrorList carries every entry of a {"Errors": [...]} payload in the
// order the server sent them.
type APIErrorList struct {
	StatusCode int
	Path       string
	Errors     []APIError
}

func (e *APIErrorList) Error() string {
	parts := make([]string, len(e.Errors))
	for i, entry := range e.Errors {
		parts[i] = entry.Kind + ": " + entry.Message
	}
	return fmt.Sprintf("%s failed with %d error(s): %s", e.Path, len(e.Errors), strings.Join(parts, "; "))
}

// Is reports whether target is ErrAPI.
func (e *APIErrorList) Is(target error) bool {
	return target == ErrAPI
}

// StatusError is a non-2xx answer whose body held no error list.
type StatusError struct {
	StatusCode int
	Path       string
	// Message is the server's {"Error": ...} text when present.
	Message string
	Body    []byte
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s returned status %d: %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s returned status %d", e.Path, e.StatusCode)
}

// Is reports whether target is ErrAPI.
func (e *StatusError) Is(target error) bool {
	return target == ErrAPI
}
