package authsession

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"slices"

	"golang.org/x/net/publicsuffix"
)

// State is the session state of a Client: either NoSession or *ActiveSession.
type State interface {
	isState()
}

// NoSession means the client is not authenticated.
type NoSession struct{}

// ActiveSession holds the cookies issued by a successful login.
// Origin is the URL that issued them; it scopes which endpoints receive them.
type ActiveSession struct {
	Cookies []*http.Cookie
	Origin  *url.URL
}

func (NoSession) isState()      {}
func (*ActiveSession) isState() {}

// cookiesFor returns the session cookies that should be sent to target,
// applying domain, path, secure and expiry rules.
func (s *ActiveSession) cookiesFor(target *url.URL) []*http.Cookie {
	if s.Origin == nil {
		return nil
	}
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	jar.SetCookies(s.Origin, s.Cookies)
	return jar.Cookies(target)
}

func (s *ActiveSession) clone() *ActiveSession {
	cookies := make([]*http.Cookie, len(s.Cookies))
	for i, c := range s.Cookies {
		cp := *c
		cp.Unparsed = slices.Clone(c.Unparsed)
		cookies[i] = &cp
	}
	out := &ActiveSession{Cookies: cookies}
	if s.Origin != nil {
		origin := *s.Origin
		out.Origin = &origin
	}
	return out
}
