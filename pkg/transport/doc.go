// Package transport abstracts request execution so the session client can run
// against a real network stack in production and a scripted double in tests.
//
// The capability is split in two steps. Transport.Submit prepares an exchange
// and returns a Call; Call.Begin dispatches it and returns an
// async.Future[*http.Response]. Keeping dispatch explicit lets tests tell a
// request that was never sent apart from one that was sent and failed.
//
// Each Call completes exactly once with either a response or an error.
// There is no retry and no timeout policy here: callers bound requests with
// the context given to Submit.
//
// # Production transport
//
//	t := transport.NewHTTP(
//	    transport.WithUserAgent("my-app/2.0"),
//	)
//	resp, err := t.Submit(ctx, req).Begin().Await()
//
// HTTP sets a User-Agent, propagates an X-Request-ID header (see
// pkg/requestid) and records an OpenTelemetry client span per request. The
// caller owns resp.Body and must close it.
//
// # Testing
//
// Package transporttest provides Double, a Transport that replays scripted
// replies and records every submitted and dispatched request.
package transport
