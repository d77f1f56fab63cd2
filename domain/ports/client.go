package ports

import (
	"context"

	"github.com/reglet-dev/wallet-sdk/domain/entities"
)

// Client is the handle actions issue requests through.
// Implementations must be safe for concurrent use.
type Client interface {
	// Request sends a JSON-RPC request and decodes the result into result.
	// Errors from the transport are returned unmodified.
	Request(ctx context.Context, result any, method string, params ...any) error

	// Chain returns the chain the client is bound to, or nil.
	Chain() *entities.Chain

	// Account returns the account the client acts for, or nil.
	Account() *entities.Account
}
