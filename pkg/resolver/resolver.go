package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/authclient/pkg/async"
	"github.com/dmitrymomot/authclient/pkg/authsession"
	"github.com/dmitrymomot/authclient/pkg/cache"
	"github.com/dmitrymomot/authclient/pkg/logger"
)

// SessionClient is the login/fetch/logout protocol the resolver drives.
// *authsession.Client implements it.
type SessionClient interface {
	Authenticate(ctx context.Context, identity, secret string) *async.Future[bool]
	FetchUserInfo(ctx context.Context) *async.Future[authsession.UserInfo]
	Logout(ctx context.Context) *async.Future[bool]
}

// Cache stores resolved records by identity.
// cache.Memory and cache.Redis implement it.
type Cache interface {
	Get(ctx context.Context, identity string) (authsession.UserInfo, bool, error)
	Set(ctx context.Context, identity string, info authsession.UserInfo) error
}

// Resolver looks up user information, logging in and out around each
// network lookup and memoizing successful results per identity.
type Resolver struct {
	client  SessionClient
	cache   Cache
	logger  *slog.Logger
	metrics *Metrics

	group singleflight.Group
	// flow is held from login until the logout of that flow completes, so two
	// flows never share the client's session.
	flow sync.Mutex
	// background tracks flows and logouts that outlive the caller's future.
	background sync.WaitGroup
}

// New creates a resolver on top of client.
func New(client SessionClient, opts ...Option) *Resolver {
	r := &Resolver{client: client}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = cache.NewMemory[authsession.UserInfo]()
	}
	if r.logger == nil {
		r.logger = logger.Nop()
	}
	r.logger = r.logger.With(logger.Component("resolver"))
	return r
}

// ResolveUser returns the user information for identity.
//
// A cached record is returned immediately, whatever secret is passed, and
// nothing is sent. Otherwise the resolver logs in, fetches the record and
// always attempts a logout afterwards. A fetched record is cached and
// returned. Any failure yields nil, caches nothing, and the next call retries
// the whole flow.
//
// The future completes once the logout has been dispatched; its outcome is
// only logged and counted. Concurrent calls with the same identity and secret
// share a single flow. The flow is detached from ctx cancellation: a caller
// that gives up gets ctx.Err() while the flow finishes, logs out and caches
// in the background.
func (r *Resolver) ResolveUser(ctx context.Context, identity, secret string) *async.Future[authsession.UserInfo] {
	if info, ok := r.cached(ctx, identity); ok {
		r.metrics.lookup(true)
		r.logger.DebugContext(ctx, "cache hit", logger.Identity(identity))
		return async.Resolved(info, nil)
	}
	r.metrics.lookup(false)

	p := async.NewPromise[authsession.UserInfo]()
	flowCtx := context.WithoutCancel(ctx)

	r.background.Add(1)
	go func() {
		defer r.background.Done()

		results := r.group.DoChan(flowKey(identity, secret), func() (any, error) {
			return r.resolve(flowCtx, identity, secret)
		})
		select {
		case res := <-results:
			info, _ := res.Val.(authsession.UserInfo)
			p.Resolve(info, res.Err)
		case <-ctx.Done():
			p.Resolve(nil, notResolved(ctx.Err()))
			<-results
		}
	}()
	return p.Future()
}

// Wait blocks until every flow and logout started by the resolver has
// completed.
func (r *Resolver) Wait() {
	r.background.Wait()
}

// flowKey keeps callers with different secrets in separate flows.
func flowKey(identity, secret string) string {
	return identity + "\x00" + secret
}

func notResolved(cause error) error {
	if cause == nil {
		return ErrNotResolved
	}
	return fmt.Errorf("%w: %w", ErrNotResolved, cause)
}

func (r *Resolver) resolve(ctx context.Context, identity, secret string) (authsession.UserInfo, error) {
	r.flow.Lock()

	// A flow that held the lock before us may have resolved this identity.
	if info, ok := r.cached(ctx, identity); ok {
		r.flow.Unlock()
		return info, nil
	}

	ok, err := r.client.Authenticate(ctx, identity, secret).Await()
	if !ok {
		r.flow.Unlock()
		r.metrics.flow(outcomeAuthFailed)
		r.logger.InfoContext(ctx, "login failed", logger.Identity(identity), logger.Error(err))
		return nil, notResolved(err)
	}

	info, fetchErr := r.client.FetchUserInfo(ctx).Await()

	r.logout(ctx, identity)

	if info == nil {
		r.metrics.flow(outcomeFetchFailed)
		r.logger.InfoContext(ctx, "user information unavailable", logger.Identity(identity), logger.Error(fetchErr))
		return nil, notResolved(fetchErr)
	}

	if err := r.cache.Set(ctx, identity, info); err != nil {
		r.logger.WarnContext(ctx, "failed to cache user information", logger.Identity(identity), logger.Error(err))
	}
	r.metrics.flow(outcomeResolved)
	return info, nil
}

// logout dispatches the logout and releases the flow lock once it completes.
func (r *Resolver) logout(ctx context.Context, identity string) {
	future := r.client.Logout(ctx)

	r.background.Add(1)
	go func() {
		defer r.background.Done()
		defer r.flow.Unlock()

		ok, err := future.Await()
		r.metrics.logout(ok)
		if !ok {
			r.logger.WarnContext(ctx, "logout failed", logger.Identity(identity), logger.Error(err))
		}
	}()
}

func (r *Resolver) cached(ctx context.Context, identity string) (authsession.UserInfo, bool) {
	info, ok, err := r.cache.Get(ctx, identity)
	if err != nil {
		r.logger.WarnContext(ctx, "cache lookup failed", logger.Identity(identity), logger.Error(err))
		return nil, false
	}
	return info, ok && info != nil
}
