package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/authclient/pkg/requestid"
)

const (
	DefaultUserAgent = "authclient/1.0"
	tracerName       = "github.com/dmitrymomot/authclient/pkg/transport"
)

// HTTP is the production Transport backed by *http.Client.
type HTTP struct {
	client    *http.Client
	userAgent string
	tracer    trace.Tracer
}

// NewHTTP creates a transport with a pooled HTTP client.
// The client timeout is an upper bound only; per-request deadlines come from
// the context passed to Submit.
func NewHTTP(opts ...Option) *HTTP {
	t := &HTTP{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: DefaultUserAgent,
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Submit prepares req for dispatch under ctx.
func (t *HTTP) Submit(ctx context.Context, req *http.Request) Call {
	return NewCall(ctx, req, t.do)
}

func (t *HTTP) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	ctx, span := t.tracer.Start(ctx, "HTTP "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(req.Method),
			semconv.URLFull(req.URL.String()),
		),
	)
	defer span.End()

	// Clone so header changes never leak into the caller's request.
	req = req.Clone(ctx)
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	span.SetAttributes(attribute.String("http.request.id", requestid.Apply(req)))

	resp, err := t.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %w", ErrDispatch, err)
	}

	span.SetAttributes(semconv.HTTPResponseStatusCode(resp.StatusCode))
	if resp.StatusCode >= 500 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
	return resp, nil
}
