// Package authsession implements a cookie-session client for a remote
// service with three endpoints: login, user information and logout.
//
// A Client holds at most one session. Its state is either NoSession or
// *ActiveSession, and only two transitions exist: a successful Authenticate
// installs the cookies from the login response, and a successful Logout
// removes them. Every other outcome leaves the state as it was.
//
// # Usage
//
//	client, err := authsession.New(authsession.Config{BaseURL: "https://intranet.example.com"})
//	if err != nil {
//	    return err
//	}
//
//	ok, err := client.Authenticate(ctx, "alice", "s3cret").Await()
//	if !ok {
//	    log.Println("login failed:", err)
//	    return
//	}
//	info, _ := client.FetchUserInfo(ctx).Await()
//	_, _ = client.Logout(ctx).Await()
//
// # Wire format
//
//	POST {base}/login.asp              user=<enc>&password=<enc>
//	GET  {base}/user_information.asp   Cookie: <session cookies>
//	GET  {base}/logout.asp             Cookie: <session cookies>
//
// Login succeeds on status 200 with at least one Set-Cookie header. The
// user information endpoint must answer 200 with a flat JSON object of
// string values. Logout succeeds on 200. Each request is bounded by
// Config.Timeout.
//
// # Errors
//
// Operations never fail through a panic or a missing completion. A failed
// operation yields false or nil together with one of the package errors
// (ErrEncoding, ErrTransport, ErrUnexpectedStatus, ErrNoCookies,
// ErrNoSession, ErrEmptyBody, ErrBodyTooLarge, ErrDecode), wrapped with
// context. Nothing is retried.
//
// # Testing
//
// Inject a transport with WithTransport. transporttest.Double records which
// requests were actually dispatched, which is how tests verify that fetch
// and logout without a session send nothing.
package authsession
