// Package client provides the wallet client: a transport bound to an optional
// chain and account, which capability extensions are composed onto.
package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/reglet-dev/wallet-sdk/domain/entities"
	"github.com/reglet-dev/wallet-sdk/domain/ports"
)

var _ ports.Client = (*Client)(nil)

// Client issues JSON-RPC requests through a transport.
// A Client is immutable after New and safe for concurrent use.
type Client struct {
	transport ports.Transport
	chain     *entities.Chain
	account   *entities.Account
	logger    *slog.Logger
	key       string
	name      string
	uid       string
	actions   []string // bound action names, see Extend
}

// New creates a client over transport.
//
// Example usage:
//
//	c, err := client.New(tr,
//	    client.WithChain(&entities.Sepolia),
//	    client.WithAccount(entities.JSONRPCAccount(addr)),
//	)
func New(transport ports.Transport, opts ...Option) (*Client, error) {
	if transport == nil {
		return nil, fmt.Errorf("client requires a transport")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Client{
		transport: transport,
		chain:     cfg.chain,
		account:   cfg.account,
		logger:    cfg.logger,
		key:       cfg.key,
		name:      cfg.name,
		uid:       uuid.NewString(),
		actions:   append([]string(nil), baseActions...),
	}, nil
}

// Request sends method through the transport. The transport's error is returned
// unmodified so callers can inspect it with errors.As.
func (c *Client) Request(ctx context.Context, result any, method string, params ...any) error {
	requestID := uuid.NewString()
	c.logger.DebugContext(ctx, "rpc request",
		"client", c.uid,
		"request_id", requestID,
		"method", method,
	)

	err := c.transport.Request(ctx, result, method, params...)
	if err != nil {
		c.logger.DebugContext(ctx, "rpc request failed",
			"client", c.uid,
			"request_id", requestID,
			"method", method,
			"error", err,
		)
		return err
	}

	c.logger.DebugContext(ctx, "rpc request completed",
		"client", c.uid,
		"request_id", requestID,
		"method", method,
	)
	return nil
}

// Chain returns the chain the client is bound to, or nil.
func (c *Client) Chain() *entities.Chain {
	return c.chain
}

// Account returns the account the client acts for, or nil.
func (c *Client) Account() *entities.Account {
	return c.account
}

// Transport returns the underlying transport.
func (c *Client) Transport() ports.Transport {
	return c.transport
}

// Key returns the client's short identifier.
func (c *Client) Key() string {
	return c.key
}

// Name returns the client's human-readable name.
func (c *Client) Name() string {
	return c.name
}

// UID uniquely identifies this client instance in logs.
func (c *Client) UID() string {
	return c.uid
}

// BoundActions returns the sorted names of the actions bound to the client.
func (c *Client) BoundActions() []string {
	return append([]string(nil), c.actions...)
}

// Close closes the underlying transport. Clients derived through Extend share
// the transport, so close only once.
func (c *Client) Close() {
	c.transport.Close()
}
