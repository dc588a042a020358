package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation marks input rejected before any request is made.
var ErrValidation = errors.New("invalid input")

// Validation wraps ErrValidation with a user-facing reason.
func Validation(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// APIError reports a request the server answered but did not accept: either a
// non-2xx status or a 2xx body carrying success=false.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Application() {
		if e.Message == "" {
			return fmt.Sprintf("api %s %s reported failure", e.Method, e.Path)
		}
		return fmt.Sprintf("api %s %s reported failure: %s", e.Method, e.Path, e.Message)
	}
	if e.Message == "" {
		return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("api %s %s returned status %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// Application reports whether the HTTP exchange succeeded but the payload
// flagged a failure.
func (e *APIError) Application() bool {
	return e.Status >= 200 && e.Status < 300
}

// Kind groups failures for logging and alert wording.
type Kind int

const (
	KindNone Kind = iota
	KindTransport
	KindHTTP
	KindApplication
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindApplication:
		return "application"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by this package onto a Kind. Anything that is
// neither an APIError nor a validation error is treated as a transport failure.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrValidation) {
		return KindValidation
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Application() {
			return KindApplication
		}
		return KindHTTP
	}
	return KindTransport
}

// Message returns the server-supplied message when there is one, otherwise
// fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return strings.TrimSpace(apiErr.Message)
	}
	if errors.Is(err, ErrValidation) {
		return strings.TrimPrefix(err.Error(), ErrValidation.Error()+": ")
	}
	return fallback
}
