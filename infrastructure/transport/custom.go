package transport

import (
	"context"
	"encoding/json"
	stdErrors "errors"

	"github.com/reglet-dev/wallet-sdk/domain/entities"
	"github.com/reglet-dev/wallet-sdk/domain/errors"
	"github.com/reglet-dev/wallet-sdk/domain/ports"
)

var _ ports.Transport = (*CustomTransport)(nil)

// CustomTransport forwards requests to an EIP-1193 provider.
type CustomTransport struct {
	provider ports.Provider
	request  RequestFunc
	info     ports.TransportInfo
	cfg      config
}

// ErrNilProvider is returned by Custom when no provider is given.
var ErrNilProvider = stdErrors.New("custom transport requires a provider")

// Custom creates a transport backed by provider. WithHeader and WithHTTPClient
// have no effect.
func Custom(provider ports.Provider, opts ...Option) (*CustomTransport, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	info := ports.TransportInfo{Key: "custom", Name: "Custom Provider", Type: "custom"}
	if cfg.key != "" {
		info.Key = cfg.key
	}
	if cfg.name != "" {
		info.Name = cfg.name
	}

	t := &CustomTransport{provider: provider, info: info, cfg: cfg}
	t.request = chain(t.call, cfg.middleware)
	return t, nil
}

// Request implements ports.Transport.
func (t *CustomTransport) Request(ctx context.Context, result any, method string, params ...any) error {
	return t.request(ctx, result, method, params...)
}

func (t *CustomTransport) call(ctx context.Context, result any, method string, params ...any) error {
	parent := ctx
	if t.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.cfg.timeout)
		defer cancel()
	}

	raw, err := t.provider.Request(ctx, entities.RequestArguments{Method: method, Params: params})
	if err != nil {
		return mapError(err, method, "", firedTimeout(parent, t.cfg.timeout))
	}

	if result == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return &errors.WireFormatError{Operation: "decode", Type: method + " result", Err: err}
	}
	return nil
}

// Info implements ports.Transport.
func (t *CustomTransport) Info() ports.TransportInfo {
	return t.info
}

// Close implements ports.Transport. Providers own their connection, so this is a no-op.
func (t *CustomTransport) Close() {}
