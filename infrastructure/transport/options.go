package transport

import (
	"net/http"
	"time"
)

// Option is a functional option for configuring a transport.
type Option func(*config)

type config struct {
	headers    http.Header
	httpClient *http.Client
	middleware []Middleware
	key        string
	name       string
	timeout    time.Duration
}

func defaultConfig() config {
	return config{
		headers: make(http.Header),
		timeout: 30 * time.Second,
	}
}

// WithHeader adds an HTTP header sent with every request (and with the
// WebSocket handshake). Ignored by Custom.
func WithHeader(key, value string) Option {
	return func(c *config) {
		c.headers.Add(key, value)
	}
}

// WithHTTPClient sets the HTTP client used by HTTP transports. Nil is ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds each request. Default is 30 seconds.
// Zero disables the per-request deadline; a negative duration is ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.timeout = d
		}
	}
}

// WithMiddleware appends middleware to the request chain.
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *config) {
		c.middleware = append(c.middleware, middleware...)
	}
}

// WithKey overrides the transport's short identifier.
func WithKey(key string) Option {
	return func(c *config) {
		c.key = key
	}
}

// WithName overrides the transport's human-readable name.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}
