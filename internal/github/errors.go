package github

import (
	"errors"
	"fmt"
	"time"
)

// NetworkError wraps a transport failure: the request never produced a
// response.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RateLimitError is returned when GitHub reports no remaining requests.
type RateLimitError struct {
	Limit   int
	Reset   time.Time
	ResetIn time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("ratelimit of %d requests exceeded, resets in %s", e.Limit, humanizeDuration(e.ResetIn))
}

// APIError is a non-2xx response from GitHub.
type APIError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("GET %s: HTTP %d: %s", e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
}

// IsRateLimit returns true if err is or wraps a *RateLimitError.
func IsRateLimit(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// IsNetwork returns true if err is or wraps a *NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsNotFound returns true if err is a 404 from the API.
func IsNotFound(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode == 404
	}
	return false
}
