package youtrack

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	ErrorKindAuthentication ErrorKind = "authentication"
	ErrorKindAuthorization  ErrorKind = "authorization"
	ErrorKindNotFound       ErrorKind = "not_found"
	ErrorKindTransient      ErrorKind = "transient"
	ErrorKindAPI            ErrorKind = "api"
)

// APIError is a non-2xx response from the tracker. Kind decides whether a
// retry can change the outcome.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (apiError *APIError) Error() string {
	if apiError.Message == "" {
		return fmt.Sprintf("%s error (HTTP %d)", apiError.Kind, apiError.StatusCode)
	}
	return fmt.Sprintf("%s error (HTTP %d): %s", apiError.Kind, apiError.StatusCode, apiError.Message)
}

func (apiError *APIError) Retryable() bool {
	return apiError.Kind == ErrorKindTransient
}

func newAPIError(statusCode int, message string) *APIError {
	kind := ErrorKindAPI
	switch {
	case statusCode == http.StatusUnauthorized:
		kind = ErrorKindAuthentication
	case statusCode == http.StatusForbidden:
		kind = ErrorKindAuthorization
	case statusCode == http.StatusNotFound:
		kind = ErrorKindNotFound
	case statusCode == http.StatusRequestTimeout || statusCode >= 500:
		kind = ErrorKindTransient
	}
	return &APIError{Kind: kind, StatusCode: statusCode, Message: message}
}

// IsRetryable reports whether err can be retried. Transport-level failures
// (timeouts, connection resets) carry no status code and are always
// retryable; API errors are retried only when transient.
func IsRetryable(err error) bool {
	var apiError *APIError
	if errors.As(err, &apiError) {
		return apiError.Retryable()
	}
	return true
}
