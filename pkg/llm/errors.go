package llm

import "fmt"

// APIError represents a non-200 response from the chat endpoint.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the response body, when present.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("llm: API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("llm: API error %d", e.StatusCode)
}

// IsServerError returns true for 5xx responses.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}
