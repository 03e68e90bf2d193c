package transport

import (
	"context"
	"net/http"
	"sync"

	"github.com/dmitrymomot/authclient/pkg/async"
)

// Transport submits HTTP requests.
// Submit only prepares the exchange; nothing is sent until Call.Begin.
type Transport interface {
	Submit(ctx context.Context, req *http.Request) Call
}

// Call is a prepared exchange with the remote service.
type Call interface {
	// Begin dispatches the request and returns a future that completes with
	// either a response or an error, never both. Calling Begin again returns
	// the same future without dispatching twice.
	Begin() *async.Future[*http.Response]
}

// DoFunc performs a single request/response exchange.
type DoFunc func(ctx context.Context, req *http.Request) (*http.Response, error)

type call struct {
	ctx    context.Context
	req    *http.Request
	do     DoFunc
	once   sync.Once
	future *async.Future[*http.Response]
}

// NewCall wraps do in a Call that runs it asynchronously on the first Begin.
// The outcome is normalized: a nil response without an error becomes
// ErrNoResponse, and a response returned together with an error is closed and
// dropped in favour of the error.
func NewCall(ctx context.Context, req *http.Request, do DoFunc) Call {
	return &call{ctx: ctx, req: req, do: do}
}

func (c *call) Begin() *async.Future[*http.Response] {
	c.once.Do(func() {
		c.future = async.Async(c.ctx, c.req, func(ctx context.Context, req *http.Request) (*http.Response, error) {
			resp, err := c.do(ctx, req)
			switch {
			case err != nil:
				if resp != nil && resp.Body != nil {
					_ = resp.Body.Close()
				}
				return nil, err
			case resp == nil:
				return nil, ErrNoResponse
			}
			return resp, nil
		})
	})
	return c.future
}
