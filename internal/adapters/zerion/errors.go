package zerion

import (
	"fmt"
	"net/http"
)

// APIError represents a non-2xx response from the Zerion API
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("zerion API error: status %d on %s: %s", e.StatusCode, e.Endpoint, e.Body)
	}
	return fmt.Sprintf("zerion API error: status %d on %s", e.StatusCode, e.Endpoint)
}

// IsRateLimited reports whether the request was rejected for rate limiting
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsRetryable reports whether the request is worth retrying
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.IsRateLimited()
}

// ValidationError indicates a 2xx response whose payload does not match
// the expected schema. Validation failures are terminal, never retried.
type ValidationError struct {
	Endpoint string
	Detail   string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("zerion response from %s failed validation: %s", e.Endpoint, e.Detail)
}
