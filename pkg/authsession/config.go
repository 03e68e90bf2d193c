package authsession

import (
	"fmt"
	"net/url"
	"time"
)

const (
	DefaultLoginPath    = "/login.asp"
	DefaultUserInfoPath = "/user_information.asp"
	DefaultLogoutPath   = "/logout.asp"
	DefaultTimeout      = 10 * time.Second
	DefaultMaxBodyBytes = 64 << 10
)

// Config describes the remote service. Fields left empty fall back to the
// package defaults; only BaseURL is required.
type Config struct {
	BaseURL      string        `env:"AUTH_BASE_URL,required"`
	LoginPath    string        `env:"AUTH_LOGIN_PATH" envDefault:"/login.asp"`
	UserInfoPath string        `env:"AUTH_USER_INFO_PATH" envDefault:"/user_information.asp"`
	LogoutPath   string        `env:"AUTH_LOGOUT_PATH" envDefault:"/logout.asp"`
	Timeout      time.Duration `env:"AUTH_REQUEST_TIMEOUT" envDefault:"10s"`
	MaxBodyBytes int64         `env:"AUTH_MAX_BODY_BYTES" envDefault:"65536"`
}

type endpoints struct {
	login    *url.URL
	userInfo *url.URL
	logout   *url.URL
}

func (c *Config) applyDefaults() {
	if c.LoginPath == "" {
		c.LoginPath = DefaultLoginPath
	}
	if c.UserInfoPath == "" {
		c.UserInfoPath = DefaultUserInfoPath
	}
	if c.LogoutPath == "" {
		c.LogoutPath = DefaultLogoutPath
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

// resolve validates the base URL and joins the endpoint paths onto it.
func (c Config) resolve() (endpoints, error) {
	if c.BaseURL == "" {
		return endpoints{}, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}

	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return endpoints{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return endpoints{}, fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidConfig)
	}
	if base.Host == "" {
		return endpoints{}, fmt.Errorf("%w: host is required", ErrInvalidConfig)
	}
	base.RawQuery, base.Fragment = "", ""
	// JoinPath on an empty path yields a relative path, which cookie path
	// matching never accepts.
	if base.Path == "" {
		base.Path, base.RawPath = "/", ""
	}

	return endpoints{
		login:    base.JoinPath(c.LoginPath),
		userInfo: base.JoinPath(c.UserInfoPath),
		logout:   base.JoinPath(c.LogoutPath),
	}, nil
}
