// Package transport implements ports.Transport.
//
// Dial connects to a JSON-RPC endpoint over HTTP or WebSocket using the
// go-ethereum rpc client. Custom wraps an EIP-1193 style provider such as an
// injected wallet. Both run requests through an optional middleware chain and
// translate failures into the typed errors of domain/errors.
package transport
