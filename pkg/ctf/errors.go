package ctf

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// FailureKind classifies a non-success HTTP response for caller branching.
type FailureKind int

const (
	// KindUnknown covers statuses outside the mapped ranges.
	KindUnknown FailureKind = iota
	// KindUnauthenticated covers 401 and 403.
	KindUnauthenticated
	// KindNotFound covers 404.
	KindNotFound
	// KindConflict covers 409.
	KindConflict
	// KindServerError covers 5xx and request timeouts.
	KindServerError
)

// String implements fmt.Stringer.
func (k FailureKind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindServerError:
		return "server error"
	case KindUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// ClassifyStatus maps an HTTP status code to a FailureKind. Success codes
// are never passed here; callers classify only after deciding the request
// failed.
func ClassifyStatus(status int) FailureKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnauthenticated
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= http.StatusInternalServerError:
		return KindServerError
	default:
		return KindUnknown
	}
}

// ExtractMessage pulls a human-readable message out of an error body. It
// tries the JSON "message" field first and falls back to the raw body.
func ExtractMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}

	err := json.Unmarshal(body, &envelope)
	if err == nil && envelope.Message != "" {
		return envelope.Message
	}

	return strings.TrimSpace(string(body))
}

// APIError represents a non-success response from the TeamForge server.
type APIError struct {
	StatusCode int
	Kind       FailureKind
	Message    string
}

// NewAPIError builds an APIError from a status code and response body.
func NewAPIError(status int, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Kind:       ClassifyStatus(status),
		Message:    ExtractMessage(body),
	}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d (%s)", e.StatusCode, e.Kind)
	}

	return fmt.Sprintf("server returned status %d (%s): %s", e.StatusCode, e.Kind, e.Message)
}

// Static errors that can be wrapped with context.
var (
	ErrServerURLRequired    = errors.New("server URL is required")
	ErrNotAuthenticated     = errors.New("no active session")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrTokenNotRenewable    = errors.New("session token cannot be renewed")
	ErrArtifactNotRefilled  = errors.New("artifact must be refilled before update")
	ErrPathSegmentNotFound  = errors.New("path segment not found")
	ErrEmptyFolderPath      = errors.New("folder path is empty")
	ErrProjectNotFound      = errors.New("project not found")
	ErrFileNotTransferable  = errors.New("uploaded file id is scoped to the session that uploaded it")
)

// IsNotFound checks whether the error is a 404 from the server.
func IsNotFound(err error) bool {
	return kindOf(err) == KindNotFound
}

// IsUnauthenticated checks whether the error is a 401/403 from the server.
func IsUnauthenticated(err error) bool {
	return kindOf(err) == KindUnauthenticated
}

// IsConflict checks whether the error is a 409 from the server.
func IsConflict(err error) bool {
	return kindOf(err) == KindConflict
}

// IsServerError checks whether the error is a 5xx from the server.
func IsServerError(err error) bool {
	return kindOf(err) == KindServerError
}

func kindOf(err error) FailureKind {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}

	return KindUnknown
}
