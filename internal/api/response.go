// Package api defines the shared JSON response envelope for the HTTP surface.
// Every error response has the shape {status: "fail"|"error", message} —
// "fail" for expected 4xx conditions, "error" for unexpected 5xx ones.
package api

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// MessageResponse is a minimal success envelope carrying only a message.
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Fail builds the envelope for operational (expected) client errors.
func Fail(message string) ErrorResponse {
	return ErrorResponse{Status: "fail", Message: message}
}

// Error builds the envelope for unexpected server errors. The message must
// never leak internals.
func Error(message string) ErrorResponse {
	return ErrorResponse{Status: "error", Message: message}
}

// Message builds a success envelope with the given message.
func Message(message string) MessageResponse {
	return MessageResponse{Status: "success", Message: message}
}
