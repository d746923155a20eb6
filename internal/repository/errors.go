package repository

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds of the movie backend
var (
	// ErrNetwork transport failure or a non-2xx status without a more specific cause
	ErrNetwork = errors.New("movie backend unavailable")
	// ErrNotFound the requested id does not exist
	ErrNotFound = errors.New("movie not found")
	// ErrValidation the backend rejected the payload
	ErrValidation = errors.New("movie rejected by backend")
)

// APIError non-2xx answer from the backend
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Unwrap classifies the status into one of the error kinds
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	default:
		return ErrNetwork
	}
}

// IsNotFound reports whether err means the movie does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
