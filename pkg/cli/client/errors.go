package client

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the scrape API, carrying the HTTP status
// and whatever error message the server supplied.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether the server answered 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// newAPIError extracts the server's error message from a non-2xx body. The API
// reports errors as {"error": "..."}; anything else falls back to the raw body
// or the HTTP status line.
func newAPIError(statusCode int, status string, body []byte) *APIError {
	var errorResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error != "" {
		return &APIError{StatusCode: statusCode, Message: errorResp.Error}
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = status
	}
	return &APIError{StatusCode: statusCode, Message: msg}
}
