package authsession

import "errors"

// Every failure of a client operation collapses to false or a nil UserInfo.
// These errors travel alongside that result for diagnostics; they never
// replace it.
var (
	ErrInvalidConfig    = errors.New("authsession: invalid configuration")
	ErrEncoding         = errors.New("authsession: credentials cannot be encoded")
	ErrTransport        = errors.New("authsession: transport failure")
	ErrUnexpectedStatus = errors.New("authsession: unexpected status code")
	ErrNoCookies        = errors.New("authsession: login response carried no cookies")
	ErrNoSession        = errors.New("authsession: no active session")
	ErrEmptyBody        = errors.New("authsession: empty response body")
	ErrBodyTooLarge     = errors.New("authsession: response body too large")
	ErrDecode           = errors.New("authsession: malformed user information")
)
