// Package api defines the JSON request and response types shared by the HTTP handlers.
package api

// ErrorResponse is the body returned for any failed request.
// Clients surface the message string verbatim.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse is the body returned for acknowledgement-only successes.
type MessageResponse struct {
	Message string `json:"message"`
}
