package resolver_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authclient/pkg/async"
	"github.com/dmitrymomot/authclient/pkg/authsession"
	"github.com/dmitrymomot/authclient/pkg/transport/transporttest"
)

const baseURL = "http://intranet.example.test"

func newSession(t *testing.T, replies ...transporttest.Reply) (*authsession.Client, *transporttest.Double) {
	t.Helper()
	double := transporttest.New(replies...)
	client, err := authsession.New(
		authsession.Config{BaseURL: baseURL},
		authsession.WithTransport(double),
	)
	require.NoError(t, err)
	return client, double
}

func loginOK() transporttest.Reply {
	return transporttest.Respond(http.StatusOK, "", "Set-Cookie", "Login=success")
}

func userInfo(body string) transporttest.Reply {
	return transporttest.Respond(http.StatusOK, body)
}

func logoutOK() transporttest.Reply {
	return transporttest.Respond(http.StatusOK, "")
}

func paths(reqs []transporttest.Request) []string {
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.URL[len(baseURL):])
	}
	return out
}

var errScripted = errors.New("scripted failure")

// fakeClient is a SessionClient with scripted outcomes that records the
// order of calls.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	authOK   bool
	info     authsession.UserInfo
	logoutOK bool
	// validSecret, when set, makes login succeed only for that secret.
	validSecret string
	// quiet makes failures carry no error.
	quiet   bool
	secrets []string

	// authGate, when set, blocks Authenticate until closed.
	authGate chan struct{}
	// authCalled, when set, receives the secret of every login attempt.
	authCalled chan string
	// fetchStarted and fetchGate, when set, let a test act while a fetch is
	// in flight. A fetch released after its context ended fails.
	fetchStarted chan struct{}
	fetchGate    chan struct{}

	fetchCtxErr  error
	logoutCtxErr error
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeClient) Authenticate(ctx context.Context, identity, secret string) *async.Future[bool] {
	f.record("authenticate:" + identity)
	f.mu.Lock()
	f.secrets = append(f.secrets, secret)
	f.mu.Unlock()
	if f.authCalled != nil {
		f.authCalled <- secret
	}
	return async.Go(ctx, func(context.Context) (bool, error) {
		if f.authGate != nil {
			<-f.authGate
		}
		ok := f.authOK
		if f.validSecret != "" {
			ok = secret == f.validSecret
		}
		if !ok {
			return false, f.failure()
		}
		return true, nil
	})
}

func (f *fakeClient) Secrets() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.secrets))
	copy(out, f.secrets)
	return out
}

func (f *fakeClient) failure() error {
	if f.quiet {
		return nil
	}
	return errScripted
}

func (f *fakeClient) FetchUserInfo(ctx context.Context) *async.Future[authsession.UserInfo] {
	f.record("fetch")
	if f.fetchGate != nil {
		close(f.fetchStarted)
		return async.Go(context.Background(), func(context.Context) (authsession.UserInfo, error) {
			<-f.fetchGate
			if err := ctx.Err(); err != nil {
				f.mu.Lock()
				f.fetchCtxErr = err
				f.mu.Unlock()
				return nil, err
			}
			return f.info, nil
		})
	}
	if f.info == nil {
		return async.Resolved[authsession.UserInfo](nil, f.failure())
	}
	return async.Resolved(f.info, nil)
}

func (f *fakeClient) Logout(ctx context.Context) *async.Future[bool] {
	f.record("logout")
	f.mu.Lock()
	f.logoutCtxErr = ctx.Err()
	f.mu.Unlock()
	if !f.logoutOK {
		return async.Resolved(false, f.failure())
	}
	return async.Resolved(true, nil)
}

// brokenCache fails every operation.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (authsession.UserInfo, bool, error) {
	return nil, false, errScripted
}

func (brokenCache) Set(context.Context, string, authsession.UserInfo) error {
	return errScripted
}
