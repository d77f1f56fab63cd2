package transport

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"time"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/reglet-dev/wallet-sdk/domain/errors"
)

// firedTimeout returns timeout when the per-request deadline is the one that
// ended the call, and 0 when the caller's context was already done.
func firedTimeout(parent context.Context, timeout time.Duration) time.Duration {
	if parent.Err() != nil {
		return 0
	}
	return timeout
}

// mapError translates a request failure into the domain error taxonomy.
// Errors that are already domain errors, and context cancellation, are returned as-is.
// timeout is reported on TimeoutError and is 0 when the caller's deadline fired.
func mapError(err error, method, target string, timeout time.Duration) error {
	if err == nil {
		return nil
	}

	var de errors.DetailedError
	if stdErrors.As(err, &de) {
		return err
	}

	if stdErrors.Is(err, context.DeadlineExceeded) {
		return &errors.TimeoutError{Operation: method, Target: target, Duration: timeout, Err: err}
	}
	if stdErrors.Is(err, context.Canceled) {
		return err
	}

	var codeErr rpc.Error
	if stdErrors.As(err, &codeErr) {
		mapped := &errors.RPCError{Method: method, Code: codeErr.ErrorCode(), Message: codeErr.Error()}
		var dataErr rpc.DataError
		if stdErrors.As(err, &dataErr) {
			mapped.Data = dataErr.ErrorData()
		}
		return mapped
	}

	var httpErr rpc.HTTPError
	if stdErrors.As(err, &httpErr) {
		return &errors.HTTPError{URL: target, StatusCode: httpErr.StatusCode, Body: string(httpErr.Body), Err: err}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if stdErrors.As(err, &syntaxErr) || stdErrors.As(err, &typeErr) {
		return &errors.WireFormatError{Operation: "decode", Type: method + " result", Err: err}
	}

	return &errors.NetworkError{Operation: method, Target: target, Err: err}
}
