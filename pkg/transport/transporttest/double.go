// Package transporttest provides a scripted transport.Transport for tests.
package transporttest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrymomot/authclient/pkg/transport"
)

// ErrNoReply is returned for a dispatch that has no scripted reply left.
var ErrNoReply = errors.New("transporttest: no reply queued")

// Reply scripts the outcome of one dispatched request.
type Reply struct {
	Status int
	Header http.Header
	Body   string
	Err    error
	// Empty makes the exchange finish with neither a response nor an error.
	Empty bool
}

// Respond builds a reply with the given status and body.
// headers are name/value pairs, e.g. Respond(200, "", "Set-Cookie", "a=b").
func Respond(status int, body string, headers ...string) Reply {
	h := make(http.Header)
	for i := 0; i+1 < len(headers); i += 2 {
		h.Add(headers[i], headers[i+1])
	}
	return Reply{Status: status, Header: h, Body: body}
}

// Fail builds a reply that fails at the transport level.
func Fail(err error) Reply {
	return Reply{Err: err}
}

// Request is a snapshot of a dispatched request.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   string
}

// Double is a transport.Transport that replays queued replies in order.
// It is safe for concurrent use.
type Double struct {
	mu        sync.Mutex
	replies   []Reply
	submitted int
	requests  []Request
}

// New creates a double with an initial reply queue.
func New(replies ...Reply) *Double {
	return &Double{replies: replies}
}

// Enqueue appends replies to the queue.
func (d *Double) Enqueue(replies ...Reply) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.replies = append(d.replies, replies...)
}

// Submit records the submission and returns a call that is only dispatched
// on Begin.
func (d *Double) Submit(ctx context.Context, req *http.Request) transport.Call {
	d.mu.Lock()
	d.submitted++
	d.mu.Unlock()
	return transport.NewCall(ctx, req, d.dispatch)
}

func (d *Double) dispatch(_ context.Context, req *http.Request) (*http.Response, error) {
	rec := Request{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
	}
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, err
		}
		rec.Body = string(b)
	}

	d.mu.Lock()
	d.requests = append(d.requests, rec)
	if len(d.replies) == 0 {
		d.mu.Unlock()
		return nil, ErrNoReply
	}
	reply := d.replies[0]
	d.replies = d.replies[1:]
	d.mu.Unlock()

	switch {
	case reply.Err != nil:
		return nil, reply.Err
	case reply.Empty:
		return nil, nil
	}

	header := reply.Header
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		Status:        strconv.Itoa(reply.Status) + " " + http.StatusText(reply.Status),
		StatusCode:    reply.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(strings.NewReader(reply.Body)),
		ContentLength: int64(len(reply.Body)),
		Request:       req,
	}, nil
}

// Submitted returns how many calls were prepared.
func (d *Double) Submitted() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.submitted
}

// Dispatched returns how many calls were actually sent.
func (d *Double) Dispatched() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.requests)
}

// Requests returns the dispatched requests in order.
func (d *Double) Requests() []Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Request, len(d.requests))
	copy(out, d.requests)
	return out
}

// LastRequest returns the most recently dispatched request.
func (d *Double) LastRequest() (Request, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.requests) == 0 {
		return Request{}, false
	}
	return d.requests[len(d.requests)-1], true
}

// Pending returns how many scripted replies have not been consumed.
func (d *Double) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.replies)
}
