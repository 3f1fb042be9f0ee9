package models

// ErrorResponse is used by middleware that rejects a request before it
// reaches a route (rate limiting). Routes answer in their own shape.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}
