package entities

import "fmt"

// ErrorDetail provides structured error information for logs and CLI output.
// Error Types: "rpc", "provider", "network", "timeout", "config", "conflict", "internal"
type ErrorDetail struct {
	// Wrapped contains the underlying error detail, if any.
	Wrapped *ErrorDetail `json:"wrapped,omitempty"`

	// Data is the JSON-RPC error data returned by the wallet.
	Data any `json:"data,omitempty"`

	// Message is a human-readable error description.
	Message string `json:"message"`

	// Type categorizes the error.
	Type string `json:"type"`

	// Code is a machine-readable error code (e.g., "4001", "http_502").
	Code string `json:"code,omitempty"`

	// IsTimeout indicates if this was a timeout error.
	IsTimeout bool `json:"is_timeout,omitempty"`

	// IsUserRejection indicates the wallet user declined the request.
	IsUserRejection bool `json:"is_user_rejection,omitempty"`
}

// Error implements the error interface.
func (e *ErrorDetail) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Type != "" && e.Type != "internal" {
		msg = fmt.Sprintf("%s: %s", e.Type, msg)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Code)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped.Error())
	}
	return msg
}

// NewErrorDetail creates a new ErrorDetail with the given type and message.
func NewErrorDetail(errorType, message string) *ErrorDetail {
	return &ErrorDetail{
		Type:    errorType,
		Message: message,
	}
}

// WithCode sets the code and returns e.
func (e *ErrorDetail) WithCode(code string) *ErrorDetail {
	e.Code = code
	return e
}
