package upstage

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"docpilot/internal/domain"
)

// TransportError is a failed vendor call: either a non-2xx response or a
// network failure (StatusCode 0). Body holds the vendor's raw error text.
type TransportError struct {
	Capability domain.Capability
	StatusCode int
	Body       string
	RetryAfter time.Duration
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("API request failed: %v", e.Err)
	}
	return fmt.Sprintf("API request failed: %d - %s", e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is makes every TransportError match domain.ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == domain.ErrTransport
}

// RateLimited reports whether the vendor answered 429.
func (e *TransportError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil || secs < 0 {
		return 0
	}
	return secs
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
