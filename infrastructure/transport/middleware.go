package transport

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// RequestFunc performs a single JSON-RPC request.
type RequestFunc func(ctx context.Context, result any, method string, params ...any) error

// Middleware wraps a RequestFunc to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
//
// Example usage:
//
//	countingMiddleware := func(next transport.RequestFunc) transport.RequestFunc {
//	    return func(ctx context.Context, result any, method string, params ...any) error {
//	        requests.Add(1)
//	        return next(ctx, result, method, params...)
//	    }
//	}
type Middleware func(next RequestFunc) RequestFunc

// chain applies middleware around fn, first middleware outermost.
func chain(fn RequestFunc, middleware []Middleware) RequestFunc {
	for i := len(middleware) - 1; i >= 0; i-- {
		fn = middleware[i](fn)
	}
	return fn
}

// PanicRecoveryMiddleware returns a middleware that converts a panic in the
// wrapped request into an error instead of crashing the caller.
func PanicRecoveryMiddleware() Middleware {
	return func(next RequestFunc) RequestFunc {
		return func(ctx context.Context, result any, method string, params ...any) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("panic during %s: %v", method, r)
				}
			}()
			return next(ctx, result, method, params...)
		}
	}
}

// LoggingMiddleware returns a middleware that logs every request at debug level
// and failures at warn level.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next RequestFunc) RequestFunc {
		return func(ctx context.Context, result any, method string, params ...any) error {
			start := time.Now()
			logger.DebugContext(ctx, "transport request", "method", method)

			err := next(ctx, result, method, params...)
			if err != nil {
				logger.WarnContext(ctx, "transport request failed",
					"method", method,
					"duration", time.Since(start),
					"error", err,
				)
				return err
			}

			logger.DebugContext(ctx, "transport request completed",
				"method", method,
				"duration", time.Since(start),
			)
			return nil
		}
	}
}
