// Package rest is the shared JSON-over-HTTP plumbing used by the
// third-party API clients.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/ratelimit"
)

// StatusError is returned for non-2xx responses
type StatusError struct {
	Service    string
	Method     string
	Path       string
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s %s returned status %d: %s", e.Service, e.Method, e.Path, e.StatusCode, e.Body)
}

// Temporary reports whether the request is worth retrying
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// IsStatus reports whether err is a StatusError with the given code
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// Options configures a Client
type Options struct {
	Service    string
	BaseURL    string
	HTTPClient *http.Client
	Limiter    *ratelimit.RateLimiter
	// Decorate adds auth and other headers to every request
	Decorate   func(*http.Request)
	MaxRetries uint64
	MaxElapsed time.Duration
}

// Client issues JSON requests against one upstream
type Client struct {
	opts Options
}

// New creates a Client
func New(opts Options) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.MaxElapsed <= 0 {
		opts.MaxElapsed = 30 * time.Second
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Client{opts: opts}
}

// BaseURL returns the upstream base URL
func (c *Client) BaseURL() string {
	return c.opts.BaseURL
}

// Do sends in as JSON (when non-nil) and decodes a 2xx body into out (when non-nil).
// 429 and 5xx responses and transport errors are retried with exponential backoff.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", c.opts.Service, err)
		}
		payload = b
	}

	endpoint := c.opts.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body []byte
	op := func() error {
		if c.opts.Limiter != nil {
			if err := c.opts.Limiter.Wait(ctx); err != nil {
				return backoff.Permanent(err)
			}
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.opts.Decorate != nil {
			c.opts.Decorate(req)
		}

		resp, err := c.opts.HTTPClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			se := &StatusError{
				Service:    c.opts.Service,
				Method:     method,
				Path:       path,
				StatusCode: resp.StatusCode,
				Body:       truncate(string(data), 2048),
				RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			}
			if resp.StatusCode == http.StatusTooManyRequests && c.opts.Limiter != nil {
				c.opts.Limiter.RecordRateLimitError(se.RetryAfter)
			}
			if se.Temporary() {
				return se
			}
			return backoff.Permanent(se)
		}

		body = data
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxElapsedTime = c.opts.MaxElapsed

	var b backoff.BackOff = policy
	if c.opts.MaxRetries > 0 {
		b = backoff.WithMaxRetries(b, c.opts.MaxRetries)
	}

	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.opts.Service, err)
	}
	return nil
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		return time.Until(at)
	}
	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
