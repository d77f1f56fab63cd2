// Package errors provides domain-specific error types for the SDK.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/reglet-dev/wallet-sdk/domain/entities"
)

// EIP-1193 provider error codes.
const (
	CodeUserRejectedRequest = 4001
	CodeUnauthorized        = 4100
	CodeUnsupportedMethod   = 4200
	CodeDisconnected        = 4900
	CodeChainDisconnected   = 4901
)

// DetailedError is an interface for custom error types that can convert themselves
// to a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// RPCError is a JSON-RPC error returned by the wallet or node.
type RPCError struct {
	Data    any
	Method  string
	Message string
	Code    int
}

func (e *RPCError) Error() string {
	if e.Method != "" {
		return fmt.Sprintf("%s failed with code %d: %s", e.Method, e.Code, e.Message)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// ErrorCode returns the JSON-RPC error code.
func (e *RPCError) ErrorCode() int {
	return e.Code
}

// ErrorData returns the JSON-RPC error data.
func (e *RPCError) ErrorData() any {
	return e.Data
}

// IsProviderError reports whether the code is in the EIP-1193 provider range.
func (e *RPCError) IsProviderError() bool {
	return e.Code >= 4000 && e.Code < 5000
}

// ToErrorDetail implements DetailedError.
func (e *RPCError) ToErrorDetail() *entities.ErrorDetail {
	detail := &entities.ErrorDetail{
		Message: e.Message,
		Type:    "rpc",
		Code:    strconv.Itoa(e.Code),
		Data:    e.Data,
	}
	if e.IsProviderError() {
		detail.Type = "provider"
	}
	detail.IsUserRejection = e.Code == CodeUserRejectedRequest
	return detail
}

// IsUserRejected reports whether err is a wallet user declining the request.
func IsUserRejected(err error) bool {
	return hasCode(err, CodeUserRejectedRequest)
}

// IsUnsupportedMethod reports whether the wallet does not implement the method.
func IsUnsupportedMethod(err error) bool {
	return hasCode(err, CodeUnsupportedMethod)
}

// IsDisconnected reports whether the provider is disconnected from all chains or
// from the requested chain.
func IsDisconnected(err error) bool {
	return hasCode(err, CodeDisconnected) || hasCode(err, CodeChainDisconnected)
}

func hasCode(err error, code int) bool {
	var rpcErr *RPCError
	if stdErrors.As(err, &rpcErr) {
		return rpcErr.Code == code
	}
	return false
}

// HTTPError represents a non-2xx response from an HTTP transport.
type HTTPError struct {
	Err        error
	URL        string
	Body       string
	StatusCode int
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("http %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("http %s failed with status %d", e.URL, e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *HTTPError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "network", Code: fmt.Sprintf("http_%d", e.StatusCode)}
}

// NetworkError represents a transport failure before a JSON-RPC response was received.
type NetworkError struct {
	Err       error
	Operation string
	Target    string
}

func (e *NetworkError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("network %s failed for %s: %v", e.Operation, e.Target, e.Err)
	}
	return fmt.Sprintf("network %s failed: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *NetworkError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "network", Code: e.Operation}
}

// TimeoutError represents a request that exceeded its deadline.
type TimeoutError struct {
	Err       error
	Operation string
	Target    string
	Duration  time.Duration
}

func (e *TimeoutError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s timeout after %v (target: %s)", e.Operation, e.Duration, e.Target)
	}
	return fmt.Sprintf("%s timeout after %v", e.Operation, e.Duration)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

func (e *TimeoutError) Timeout() bool {
	return true
}

// ToErrorDetail implements DetailedError.
func (e *TimeoutError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "timeout", Code: e.Operation, IsTimeout: true}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}

// ActionConflictError is returned when extending a client with an action name
// that is already bound.
type ActionConflictError struct {
	Action string
}

func (e *ActionConflictError) Error() string {
	return fmt.Sprintf("action %q is already defined on the client", e.Action)
}

// ToErrorDetail implements DetailedError.
func (e *ActionConflictError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "conflict", Code: e.Action}
}

// SchemaError represents a schema generation error.
type SchemaError struct {
	Err  error
	Type string
}

func (e *SchemaError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("schema error for type %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("schema error: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *SchemaError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "internal", Code: "schema"}
}

// WireFormatError represents a malformed request or response payload.
type WireFormatError struct {
	Err       error
	Operation string
	Type      string
}

func (e *WireFormatError) Error() string {
	return fmt.Sprintf("wire format %s failed for %s: %v", e.Operation, e.Type, e.Err)
}

func (e *WireFormatError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *WireFormatError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "internal", Code: "wire_format"}
}
