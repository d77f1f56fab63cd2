package client

import (
	"log/slog"

	"github.com/reglet-dev/wallet-sdk/domain/entities"
	sdklog "github.com/reglet-dev/wallet-sdk/log"
)

// Option defines a functional option for configuring a Client.
type Option func(*config)

type config struct {
	chain   *entities.Chain
	account *entities.Account
	logger  *slog.Logger
	key     string
	name    string
}

func defaultConfig() config {
	return config{
		logger: sdklog.Discard(),
		key:    "base",
		name:   "Base Client",
	}
}

// WithChain binds the client to chain.
func WithChain(chain *entities.Chain) Option {
	return func(c *config) {
		c.chain = chain
	}
}

// WithAccount sets the account the client acts for.
func WithAccount(account *entities.Account) Option {
	return func(c *config) {
		c.account = account
	}
}

// WithLogger sets the logger for request tracing. Requests are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithKey sets the client's short identifier.
func WithKey(key string) Option {
	return func(c *config) {
		c.key = key
	}
}

// WithName sets the client's human-readable name.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}
