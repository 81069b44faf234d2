package auth

import (
	"encoding/base64"
	"net/http"

	"github.com/cbout22/ghrefs/internal/config"
)

const acceptHeader = "application/vnd.github.v3+json"

// Header returns the Authorization header value for cfg.
// A token yields Bearer auth; user and pass together yield Basic auth and
// take precedence over the token. ok is false when no credentials are set.
func Header(cfg config.Config) (value string, ok bool) {
	if cfg.User != "" && cfg.Pass != "" {
		return "Basic " + basic(cfg.User, cfg.Pass), true
	}
	if cfg.Token != "" {
		return "Bearer " + cfg.Token, true
	}
	return "", false
}

func basic(user, pass string) string {
	return base64.StdEncoding.EncodeToString([]byte(user + ":" + pass))
}

// NewHTTPClient returns an *http.Client suitable for GitHub API calls.
// Every request carries the configured User-Agent and, when credentials are
// configured, an Authorization header. Without credentials the client still
// works for public repos, subject to stricter rate limits.
func NewHTTPClient(cfg config.Config) *http.Client {
	return &http.Client{
		Transport: NewTransport(cfg, http.DefaultTransport),
		Timeout:   cfg.Timeout.Duration,
	}
}

// NewTransport wraps base so that it decorates requests according to cfg.
func NewTransport(cfg config.Config, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = config.DefaultUserAgent
	}
	authz, _ := Header(cfg)
	return &Transport{
		authorization: authz,
		userAgent:     ua,
		base:          base,
	}
}

// Transport is an http.RoundTripper that adds GitHub headers.
type Transport struct {
	authorization string
	userAgent     string
	base          http.RoundTripper
}

var _ http.RoundTripper = (*Transport)(nil)

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid mutating the original
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	if r.Header.Get("Accept") == "" {
		r.Header.Set("Accept", acceptHeader)
	}
	if t.authorization != "" {
		r.Header.Set("Authorization", t.authorization)
	}
	return t.base.RoundTrip(r)
}
