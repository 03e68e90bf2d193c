package authsession

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrymomot/authclient/pkg/async"
	"github.com/dmitrymomot/authclient/pkg/logger"
	"github.com/dmitrymomot/authclient/pkg/transport"
)

// UserInfo is the attribute record the service returns for the logged-in user.
type UserInfo map[string]string

// Client talks to the remote service on behalf of one session at a time.
// It owns the session cookies: Authenticate sets them, Logout clears them.
//
// Operations return futures that complete exactly once. The value is the
// functional result (false or nil on any failure); the error explains why.
// A Client is safe for concurrent use in the memory sense, but concurrent
// flows share one session and will interfere with each other.
type Client struct {
	transport transport.Transport
	logger    *slog.Logger
	endpoints endpoints
	timeout   time.Duration
	maxBody   int64

	mu    sync.Mutex
	state State
}

// New creates a client for the service described by cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.applyDefaults()
	eps, err := cfg.resolve()
	if err != nil {
		return nil, err
	}

	c := &Client{
		endpoints: eps,
		timeout:   cfg.Timeout,
		maxBody:   cfg.MaxBodyBytes,
		state:     NoSession{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = transport.NewHTTP()
	}
	if c.logger == nil {
		c.logger = logger.Nop()
	}
	c.logger = c.logger.With(logger.Component("authsession"))

	return c, nil
}

// State returns a snapshot of the current session state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.state.(*ActiveSession); ok {
		return s.clone()
	}
	return NoSession{}
}

// Authenticated reports whether a session is active.
func (c *Client) Authenticated() bool {
	_, ok := c.active()
	return ok
}

// Authenticate logs in with identity and secret.
//
// The future yields true only for a 200 response that sets at least one
// cookie; those cookies replace the current session. Every other outcome
// yields false and leaves the session untouched. Credentials that cannot be
// encoded fail with ErrEncoding before anything is sent.
func (c *Client) Authenticate(ctx context.Context, identity, secret string) *async.Future[bool] {
	body, err := encodeCredentials(identity, secret)
	if err != nil {
		c.logger.DebugContext(ctx, "login aborted", logger.Identity(identity), logger.Error(err))
		return async.Resolved(false, err)
	}

	return async.Go(ctx, func(ctx context.Context) (bool, error) {
		rep, err := c.exchange(ctx, http.MethodPost, c.endpoints.login, body, nil)
		if err != nil {
			return false, err
		}
		if rep.status != http.StatusOK {
			return false, fmt.Errorf("%w: login returned %d", ErrUnexpectedStatus, rep.status)
		}
		if len(rep.cookies) == 0 {
			return false, ErrNoCookies
		}

		c.mu.Lock()
		c.state = &ActiveSession{Cookies: rep.cookies, Origin: rep.url}
		c.mu.Unlock()

		c.logger.DebugContext(ctx, "session established",
			logger.Identity(identity),
			slog.Int("cookies", len(rep.cookies)),
		)
		return true, nil
	})
}

// FetchUserInfo retrieves the user information record for the active session.
//
// Without a session the future yields nil with ErrNoSession and no request is
// sent. A non-200 status, an empty body or a body that is not a flat JSON
// object of strings yields nil. The session is never modified.
func (c *Client) FetchUserInfo(ctx context.Context) *async.Future[UserInfo] {
	sess, ok := c.active()
	if !ok {
		return async.Resolved[UserInfo](nil, ErrNoSession)
	}

	return async.Go(ctx, func(ctx context.Context) (UserInfo, error) {
		rep, err := c.exchange(ctx, http.MethodGet, c.endpoints.userInfo, nil, sess)
		if err != nil {
			return nil, err
		}
		if rep.status != http.StatusOK {
			return nil, fmt.Errorf("%w: user information returned %d", ErrUnexpectedStatus, rep.status)
		}
		if int64(len(rep.body)) > c.maxBody {
			return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, c.maxBody)
		}
		return decodeUserInfo(rep.body)
	})
}

// Logout ends the active session.
//
// Without a session the future yields false with ErrNoSession and no request
// is sent. Only a 200 response clears the session; on any failure the session
// is kept, since the server may still consider it valid.
func (c *Client) Logout(ctx context.Context) *async.Future[bool] {
	sess, ok := c.active()
	if !ok {
		return async.Resolved(false, ErrNoSession)
	}

	return async.Go(ctx, func(ctx context.Context) (bool, error) {
		rep, err := c.exchange(ctx, http.MethodGet, c.endpoints.logout, nil, sess)
		if err != nil {
			return false, err
		}
		if rep.status != http.StatusOK {
			return false, fmt.Errorf("%w: logout returned %d", ErrUnexpectedStatus, rep.status)
		}

		c.mu.Lock()
		// A login that completed meanwhile owns the state now.
		if c.state == State(sess) {
			c.state = NoSession{}
		}
		c.mu.Unlock()

		c.logger.DebugContext(ctx, "session closed")
		return true, nil
	})
}

func (c *Client) active() (*ActiveSession, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch s := c.state.(type) {
	case *ActiveSession:
		return s, true
	case NoSession:
		return nil, false
	default:
		panic(fmt.Sprintf("authsession: unknown state %T", s))
	}
}

// reply is a fully read response.
type reply struct {
	status  int
	cookies []*http.Cookie
	body    []byte
	url     *url.URL
}

// exchange sends one request bounded by the client timeout and reads the
// response body, up to one byte past the limit, before the deadline is released.
func (c *Client) exchange(ctx context.Context, method string, target *url.URL, body []byte, sess *ActiveSession) (reply, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), rdr)
	if err != nil {
		return reply{}, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")
	if sess != nil {
		for _, ck := range sess.cookiesFor(target) {
			req.AddCookie(ck)
		}
	}

	start := time.Now()
	resp, err := c.transport.Submit(ctx, req).Begin().Await()
	if err != nil {
		c.logger.DebugContext(ctx, "request failed",
			logger.Endpoint(target.Path),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
		return reply{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return reply{}, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	c.logger.DebugContext(ctx, "request completed",
		logger.Endpoint(target.Path),
		logger.StatusCode(resp.StatusCode),
		logger.Duration(time.Since(start)),
	)

	origin := target
	if resp.Request != nil && resp.Request.URL != nil {
		origin = resp.Request.URL
	}
	return reply{
		status:  resp.StatusCode,
		cookies: resp.Cookies(),
		body:    data,
		url:     origin,
	}, nil
}

// encodeCredentials builds the login form body: user first, then password.
func encodeCredentials(identity, secret string) ([]byte, error) {
	if !utf8.ValidString(identity) {
		return nil, fmt.Errorf("%w: user is not valid UTF-8", ErrEncoding)
	}
	if !utf8.ValidString(secret) {
		return nil, fmt.Errorf("%w: password is not valid UTF-8", ErrEncoding)
	}
	return []byte("user=" + url.QueryEscape(identity) + "&password=" + url.QueryEscape(secret)), nil
}

func decodeUserInfo(body []byte) (UserInfo, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyBody
	}

	// Pointers tell a JSON null member apart from an empty string.
	var raw map[string]*string
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	// A literal null decodes into a nil map without error.
	if raw == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrDecode)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON object", ErrDecode)
	}

	info := make(UserInfo, len(raw))
	for k, v := range raw {
		if v == nil {
			return nil, fmt.Errorf("%w: member %q is null", ErrDecode, k)
		}
		info[k] = *v
	}
	return info, nil
}
