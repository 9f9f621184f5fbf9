package hubspot

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ClientError is a sentinel error returned before any request is made.
type ClientError string

// Error implements the error interface
func (e ClientError) Error() string {
	return string(e)
}

const (
	ErrNilConfig         ClientError = "hubspot: config cannot be nil"
	ErrMissingObjectType ClientError = "hubspot: object type cannot be empty"
	ErrMissingID         ClientError = "hubspot: object id cannot be empty"
)

// APIError is returned when HubSpot answers with a non-2xx status. Body is the
// raw response body, which HubSpot sends as JSON.
type APIError struct {
	StatusCode  int
	Body        []byte
	ContentType string
	Method      string
	Path        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hubspot: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, string(e.Body))
}

// Message pulls the "message" field out of a HubSpot error body, falling back
// to the raw body.
func (e *APIError) Message() string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return string(e.Body)
}

// AsAPIError unwraps err to an *APIError if there is one in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
