package transport

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/reglet-dev/wallet-sdk/domain/errors"
	"github.com/reglet-dev/wallet-sdk/domain/ports"
)

var _ ports.Transport = (*RPCTransport)(nil)

// RPCTransport is a JSON-RPC transport over HTTP or WebSocket.
// It is safe for concurrent use.
type RPCTransport struct {
	client  *rpc.Client
	request RequestFunc
	info    ports.TransportInfo
	cfg     config
}

// Dial connects to rawURL. The scheme selects the transport: http(s) or ws(s).
// For HTTP no connection is made until the first request.
//
// Example usage:
//
//	tr, err := transport.Dial(ctx, "https://rpc.sepolia.org",
//	    transport.WithTimeout(10*time.Second),
//	    transport.WithMiddleware(transport.LoggingMiddleware(logger)),
//	)
//	if err != nil {
//	    return err
//	}
//	defer tr.Close()
func Dial(ctx context.Context, rawURL string, opts ...Option) (*RPCTransport, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	info, err := infoFor(rawURL)
	if err != nil {
		return nil, err
	}
	if cfg.key != "" {
		info.Key = cfg.key
	}
	if cfg.name != "" {
		info.Name = cfg.name
	}

	rpcOpts := []rpc.ClientOption{rpc.WithHeaders(cfg.headers)}
	if cfg.httpClient != nil {
		rpcOpts = append(rpcOpts, rpc.WithHTTPClient(cfg.httpClient))
	}

	client, err := rpc.DialOptions(ctx, rawURL, rpcOpts...)
	if err != nil {
		return nil, &errors.NetworkError{Operation: "dial", Target: rawURL, Err: err}
	}

	t := &RPCTransport{client: client, info: info, cfg: cfg}
	t.request = chain(t.call, cfg.middleware)
	return t, nil
}

func infoFor(rawURL string) (ports.TransportInfo, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ports.TransportInfo{}, &errors.ConfigError{Field: "url", Err: err}
	}

	switch u.Scheme {
	case "http", "https":
		return ports.TransportInfo{Key: "http", Name: "HTTP JSON-RPC", Type: "http", URL: rawURL}, nil
	case "ws", "wss":
		return ports.TransportInfo{Key: "webSocket", Name: "WebSocket JSON-RPC", Type: "webSocket", URL: rawURL}, nil
	default:
		return ports.TransportInfo{}, &errors.ConfigError{
			Field: "url",
			Err:   fmt.Errorf("unsupported scheme %q (want http, https, ws or wss)", u.Scheme),
		}
	}
}

// Request implements ports.Transport.
func (t *RPCTransport) Request(ctx context.Context, result any, method string, params ...any) error {
	return t.request(ctx, result, method, params...)
}

func (t *RPCTransport) call(ctx context.Context, result any, method string, params ...any) error {
	parent := ctx
	if t.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.cfg.timeout)
		defer cancel()
	}

	err := t.client.CallContext(ctx, result, method, params...)
	return mapError(err, method, t.info.URL, firedTimeout(parent, t.cfg.timeout))
}

// Info implements ports.Transport.
func (t *RPCTransport) Info() ports.TransportInfo {
	return t.info
}

// Close implements ports.Transport.
func (t *RPCTransport) Close() {
	t.client.Close()
}
