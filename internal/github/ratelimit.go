package github

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"
)

const (
	headerLimit     = "X-RateLimit-Limit"
	headerRemaining = "X-RateLimit-Remaining"
	headerReset     = "X-RateLimit-Reset"
)

// RateLimit is the quota GitHub reported on a response.
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// parseRateLimit reads the X-RateLimit-* headers. ok is false when the
// response carries no Remaining header; unparsable numbers count as 0.
func parseRateLimit(h http.Header) (rl RateLimit, ok bool) {
	remaining := h.Get(headerRemaining)
	if remaining == "" {
		return RateLimit{}, false
	}
	rl.Remaining = atoi(remaining)
	rl.Limit = atoi(h.Get(headerLimit))
	if reset := atoi(h.Get(headerReset)); reset > 0 {
		rl.Reset = time.Unix(int64(reset), 0)
	}
	return rl, true
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// checkRateLimit returns a *RateLimitError when the quota is exhausted.
func checkRateLimit(h http.Header, now time.Time) error {
	rl, ok := parseRateLimit(h)
	if !ok || rl.Remaining != 0 {
		return nil
	}
	resetIn := rl.Reset.Sub(now)
	if rl.Reset.IsZero() || resetIn < 0 {
		resetIn = 0
	}
	return &RateLimitError{Limit: rl.Limit, Reset: rl.Reset, ResetIn: resetIn}
}

const (
	second = int64(time.Second / time.Millisecond)
	minute = 60 * second
	hour   = 60 * minute
	day    = 24 * hour
)

// humanizeDuration renders d in long form, e.g. "5 minutes", "1 hour",
// "30 seconds" or "250 ms". Units round to the nearest whole value.
func humanizeDuration(d time.Duration) string {
	ms := d.Milliseconds()
	abs := ms
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= day:
		return plural(ms, abs, day, "day")
	case abs >= hour:
		return plural(ms, abs, hour, "hour")
	case abs >= minute:
		return plural(ms, abs, minute, "minute")
	case abs >= second:
		return plural(ms, abs, second, "second")
	}
	return fmt.Sprintf("%d ms", ms)
}

func plural(ms, abs, unit int64, name string) string {
	n := int64(math.Round(float64(ms) / float64(unit)))
	if float64(abs) >= float64(unit)*1.5 {
		return fmt.Sprintf("%d %ss", n, name)
	}
	return fmt.Sprintf("%d %s", n, name)
}
