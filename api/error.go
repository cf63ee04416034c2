package api

import "fmt"

// APIError is a non-2xx response from the backend. Message is taken from the
// response body's "error" field when present.
type APIError struct {
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// IsUnauthorized reports whether err is an APIError with status 401, which
// callers treat as an expired session.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == 401
}
