package api

import "fmt"

// TransportError is returned when the backend answers with a non-2xx status.
// The response body is never parsed.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: HTTP error! status: %d", e.Method, e.Path, e.StatusCode)
}

// NetworkError is returned when the request could not complete at all.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
