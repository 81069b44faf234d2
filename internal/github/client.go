// Package github is a thin client for the parts of the GitHub REST API that
// ghrefs needs: listing refs and reading files at a ref.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/cbout22/ghrefs/internal/auth"
	"github.com/cbout22/ghrefs/internal/config"
	"github.com/cbout22/ghrefs/internal/refs"
)

// Client talks to the GitHub API. It is safe for concurrent use.
type Client struct {
	http    *http.Client
	apiURL  string
	rawURL  string
	logger  hclog.Logger
	metrics *Metrics
	now     func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the authenticated client built from the config.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l hclog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics records every request in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithClock overrides time.Now, used when computing rate-limit resets.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a Client from cfg.
func New(cfg config.Config, opts ...Option) *Client {
	c := &Client{
		http:   auth.NewHTTPClient(cfg),
		apiURL: strings.TrimRight(orDefault(cfg.APIURL, config.DefaultAPIURL), "/"),
		rawURL: strings.TrimRight(orDefault(cfg.RawURL, config.DefaultRawURL), "/"),
		logger: hclog.New(&hclog.LoggerOptions{
			Name:   "ghrefs",
			Level:  hclog.Warn,
			Output: os.Stderr,
		}),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

type gitRef struct {
	Ref    string `json:"ref"`
	Object struct {
		SHA  string `json:"sha"`
		Type string `json:"type"`
	} `json:"object"`
}

// Refs returns every tag and branch of repo, in the order GitHub lists them.
// Refs that are neither (pull request heads, notes) are dropped.
func (c *Client) Refs(ctx context.Context, repo config.Repo) ([]refs.Reference, error) {
	var raw []gitRef
	if err := c.get(ctx, "refs", repoPath(repo)+"/git/refs", &raw); err != nil {
		return nil, fmt.Errorf("listing refs for %s: %w", repo, err)
	}

	out := make([]refs.Reference, 0, len(raw))
	for _, r := range raw {
		if ref, ok := refs.Parse(r.Ref, r.Object.SHA); ok {
			out = append(out, ref)
		}
	}
	return out, nil
}

// FileContent is a file returned by the contents API.
type FileContent struct {
	Type     string `json:"type"`
	Encoding string `json:"encoding"`
	Size     int64  `json:"size"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Content  string `json:"content"`
}

// Decode returns the file's bytes.
func (f *FileContent) Decode() ([]byte, error) {
	switch f.Encoding {
	case "base64":
		// StdEncoding skips the line breaks GitHub inserts.
		data, err := base64.StdEncoding.DecodeString(f.Content)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", f.Path, err)
		}
		return data, nil
	case "":
		return []byte(f.Content), nil
	default:
		return nil, fmt.Errorf("%s: unsupported encoding %q (file too large for the contents API, stream it instead)", f.Path, f.Encoding)
	}
}

// Contents fetches the file at path in repo at ref.
func (c *Client) Contents(ctx context.Context, repo config.Repo, ref, path string) (*FileContent, error) {
	endpoint := repoPath(repo) + "/contents/" + escapePath(path) + "?" + url.Values{"ref": {ref}}.Encode()

	var raw json.RawMessage
	if err := c.get(ctx, "contents", endpoint, &raw); err != nil {
		return nil, fmt.Errorf("fetching %s@%s:%s: %w", repo, ref, path, err)
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		return nil, fmt.Errorf("fetching %s@%s:%s: path is a directory", repo, ref, path)
	}

	var fc FileContent
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("decoding contents response: %w", err)
	}
	return &fc, nil
}

// RawURL builds the raw content URL for path in repo at ref.
func (c *Client) RawURL(repo config.Repo, ref, path string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", c.rawURL,
		url.PathEscape(repo.Owner), url.PathEscape(repo.Name), escapePath(ref), escapePath(path))
}

// Stream opens the raw bytes of path in repo at ref. The caller closes the
// returned reader.
func (c *Client) Stream(ctx context.Context, repo config.Repo, ref, path string) (io.ReadCloser, error) {
	u := c.RawURL(repo, ref, path)
	resp, err := c.do(ctx, "raw", u)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, apiError(resp, u)
	}
	return resp.Body, nil
}

// get performs an API GET and decodes the JSON body into v.
func (c *Client) get(ctx context.Context, endpoint, path string, v any) error {
	u := c.apiURL + path
	resp, err := c.do(ctx, endpoint, u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkRateLimit(resp.Header, c.now()); err != nil {
		c.logger.Warn("rate limit exhausted", "url", u, "error", err)
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp, u)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, endpoint, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", u, err)
	}

	c.logger.Debug("request", "method", req.Method, "url", u)
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.networkFailure(endpoint)
		return nil, &NetworkError{Op: req.Method, URL: u, Err: err}
	}

	rl, haveRL := parseRateLimit(resp.Header)
	c.metrics.observe(endpoint, resp.StatusCode, rl, haveRL)
	c.logger.Debug("response", "url", u, "status", resp.StatusCode, "ratelimit_remaining", rl.Remaining)
	return resp, nil
}

func apiError(resp *http.Response, u string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	msg := strings.TrimSpace(string(body))

	var parsed struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
		msg = parsed.Message
	}
	return &APIError{StatusCode: resp.StatusCode, URL: u, Message: msg}
}

func repoPath(repo config.Repo) string {
	return "/repos/" + url.PathEscape(repo.Owner) + "/" + url.PathEscape(repo.Name)
}

// escapePath escapes each segment of a slash-separated path.
func escapePath(p string) string {
	segs := strings.Split(strings.Trim(p, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
