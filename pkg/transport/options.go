package transport

import (
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

// Option configures the HTTP transport.
type Option func(*HTTP)

// WithHTTPClient replaces the underlying client. Nil is ignored.
// The client should not carry a cookie jar: session cookies are managed by
// the caller and sent explicitly.
func WithHTTPClient(client *http.Client) Option {
	return func(t *HTTP) {
		if client != nil {
			t.client = client
		}
	}
}

// WithUserAgent sets the User-Agent header for requests that don't set one.
// An empty value disables the header.
func WithUserAgent(ua string) Option {
	return func(t *HTTP) {
		t.userAgent = ua
	}
}

// WithTracerProvider records spans with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(t *HTTP) {
		if tp != nil {
			t.tracer = tp.Tracer(tracerName)
		}
	}
}
