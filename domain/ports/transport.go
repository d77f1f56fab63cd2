package ports

import (
	"context"
	"encoding/json"

	"github.com/reglet-dev/wallet-sdk/domain/entities"
)

// Transport carries JSON-RPC requests to a node or wallet.
type Transport interface {
	// Request sends method with positional params and decodes the result into result.
	// A nil result discards the response body.
	Request(ctx context.Context, result any, method string, params ...any) error

	// Info describes the transport.
	Info() TransportInfo

	// Close releases connections held by the transport.
	Close()
}

// TransportInfo describes a transport instance.
type TransportInfo struct {
	Key  string // short identifier, e.g. "http"
	Name string // human-readable name
	Type string // "http", "webSocket" or "custom"
	URL  string // endpoint, empty for custom transports
}

// Provider is an EIP-1193 request function, typically an injected wallet.
type Provider interface {
	// Request performs args and returns the raw JSON result.
	Request(ctx context.Context, args entities.RequestArguments) (json.RawMessage, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, args entities.RequestArguments) (json.RawMessage, error)

// Request implements Provider.
func (f ProviderFunc) Request(ctx context.Context, args entities.RequestArguments) (json.RawMessage, error) {
	return f(ctx, args)
}
