package backend

import (
	"encoding/json"
	"net/http"
	"strings"
)

// envelope is the uniform response wrapper every billing-backend endpoint
// returns. Data is only meaningful when Success is true.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Errors  []string        `json:"errors,omitempty"`
}

// APIError is a backend rejection: either an explicit success:false envelope
// or a non-2xx status other than 401. The gateway propagates it untranslated;
// rendering the message is presentation work.
type APIError struct {
	Status  int
	Message string
	Details []string
}

func newAPIError(status int, message string, details []string) *APIError {
	// A success:false envelope can arrive with a 2xx status; normalise so the
	// error always carries a client-renderable failure code.
	if status < http.StatusBadRequest {
		status = http.StatusUnprocessableEntity
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &APIError{Status: status, Message: message, Details: details}
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, "; ")
}

// TransportError is a network-level failure (connection refused, timeout,
// malformed response). The original cause is preserved for the caller.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }
