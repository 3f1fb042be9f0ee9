package services

import "fmt"

// HTTPError is a shim response outside the 2xx range. Body is the raw
// response text, which may not be JSON.
type HTTPError struct {
	Path   string
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("shim %s returned %d: %s", e.Path, e.Status, e.Body)
}

// TransportError means the shim call never completed: connection refused,
// DNS failure, timeout, or a body that could not be read.
type TransportError struct {
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("shim %s unreachable: %v", e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
