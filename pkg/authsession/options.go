package authsession

import (
	"log/slog"

	"github.com/dmitrymomot/authclient/pkg/transport"
)

// Option configures a Client.
type Option func(*Client)

// WithTransport injects the transport used to reach the service.
// Nil is ignored; the default is transport.NewHTTP().
func WithTransport(t transport.Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithLogger sets the logger for request diagnostics. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
